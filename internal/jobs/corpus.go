package jobs

import (
	"encoding/json"
	"os"
)

// Corpus is an ordered set of postings that share one vector space.
type Corpus struct {
	Items []*Posting

	byID map[int64]*Posting
}

// NewCorpus wraps postings in load order.
func NewCorpus(postings []*Posting) *Corpus {
	c := &Corpus{
		Items: postings,
		byID:  make(map[int64]*Posting, len(postings)),
	}
	for _, p := range postings {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = p
		}
	}
	return c
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// FindByID returns the posting with the given id or nil.
func (c *Corpus) FindByID(id int64) *Posting {
	if c == nil {
		return nil
	}
	if c.byID != nil {
		return c.byID[id]
	}
	for _, p := range c.Items {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// IDs returns posting identifiers in corpus order.
func (c *Corpus) IDs() []int64 {
	ids := make([]int64, 0, c.Len())
	for _, p := range c.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

// SkillTexts returns skill descriptions in corpus order.
func (c *Corpus) SkillTexts() []string {
	texts := make([]string, 0, c.Len())
	for _, p := range c.Items {
		texts = append(texts, p.Skills)
	}
	return texts
}

// ReportByCompany groups postings by company name.
func ReportByCompany(postings []*Posting) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, p := range postings {
		entry := map[string]string{
			"title":    p.Title,
			"location": p.Location,
		}
		if salary := p.Salary(); salary != "" {
			entry["salary"] = salary
		}
		report[p.Company] = append(report[p.Company], entry)
	}
	return report
}

// DumpToTmpFile writes v as indented JSON into a new temporary file and
// returns its name.
func DumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
