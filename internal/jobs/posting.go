package jobs

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// CSV column names of the LinkedIn-style postings dataset.
const (
	ColumnID        = "job_id"
	ColumnTitle     = "title"
	ColumnCompany   = "company_name"
	ColumnLocation  = "location"
	ColumnSkills    = "skills_desc"
	ColumnMinSalary = "min_salary"
	ColumnMaxSalary = "max_salary"
	ColumnMedSalary = "med_salary"
	ColumnPayPeriod = "pay_period"
)

// DefaultRequiredColumns are the columns a source must carry to be loaded.
var DefaultRequiredColumns = []string{
	ColumnTitle,
	ColumnCompany,
	ColumnLocation,
	ColumnSkills,
	ColumnMinSalary,
	ColumnMaxSalary,
	ColumnMedSalary,
	ColumnPayPeriod,
}

// Posting is a single job posting. It is not modified after loading.
type Posting struct {
	ID        int64    `csv:"job_id" json:"id"`
	Title     string   `csv:"title" json:"title,omitempty"`
	Company   string   `csv:"company_name" json:"company,omitempty"`
	Location  string   `csv:"location" json:"location,omitempty"`
	Skills    string   `csv:"skills_desc" json:"skills,omitempty"`
	MinSalary *float64 `csv:"min_salary" json:"min_salary,omitempty"`
	MaxSalary *float64 `csv:"max_salary" json:"max_salary,omitempty"`
	MedSalary *float64 `csv:"med_salary" json:"med_salary,omitempty"`
	PayPeriod string   `csv:"pay_period" json:"pay_period,omitempty"`
}

// Salary renders the salary fields for display, or "" when none are set.
func (p *Posting) Salary() string {
	var amount string
	switch {
	case p.MinSalary != nil && p.MaxSalary != nil:
		amount = fmt.Sprintf("%s - %s", money(*p.MinSalary), money(*p.MaxSalary))
	case p.MedSalary != nil:
		amount = money(*p.MedSalary) + " median"
	case p.MinSalary != nil:
		amount = "from " + money(*p.MinSalary)
	case p.MaxSalary != nil:
		amount = "up to " + money(*p.MaxSalary)
	default:
		return ""
	}

	if period := strings.ToLower(strings.TrimSpace(p.PayPeriod)); period != "" {
		return fmt.Sprintf("%s (%s)", amount, period)
	}
	return amount
}

// Label is the one-line description used by listings and prompts.
func (p *Posting) Label() string {
	return fmt.Sprintf("%s at %s (%s)", p.Title, p.Company, p.Location)
}

func money(v float64) string {
	return "$" + humanize.Commaf(v)
}
