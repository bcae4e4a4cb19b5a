package filtering

import (
	"context"
	"strings"

	"github.com/spigell/skillmatch/internal/jobs"
)

type keywordsFilter struct {
	keywords []string
	disabled bool
	reason   string
}

// NewKeywords creates a filter keeping postings whose skill description
// contains, ignoring case, at least one of the keywords. Blank keywords are
// ignored; without any usable keyword the filter is disabled.
func NewKeywords(keywords []string) Filter {
	f := &keywordsFilter{}
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			f.keywords = append(f.keywords, kw)
		}
	}
	if len(f.keywords) == 0 {
		f.Disable("no keywords supplied")
	}
	return f
}

func (f *keywordsFilter) Name() string { return "keywords" }

func (f *keywordsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *keywordsFilter) IsEnabled() bool { return !f.disabled }

func (f *keywordsFilter) Apply(_ context.Context, postings []*jobs.Posting) ([]*jobs.Posting, Step, error) {
	kept, step := keep(postings, func(p *jobs.Posting) bool {
		skills := strings.ToLower(p.Skills)
		for _, kw := range f.keywords {
			if strings.Contains(skills, kw) {
				return true
			}
		}
		return false
	})
	return kept, step, nil
}

func (f *keywordsFilter) Status() Status {
	details := map[string]string{}
	if len(f.keywords) > 0 {
		details["keywords"] = strings.Join(f.keywords, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
