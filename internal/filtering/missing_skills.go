package filtering

import (
	"context"
	"strings"

	"github.com/spigell/skillmatch/internal/jobs"
)

type missingSkillsFilter struct{}

// NewMissingSkills creates a filter that drops postings without a skill description.
func NewMissingSkills() Filter {
	return &missingSkillsFilter{}
}

func (f *missingSkillsFilter) Name() string { return "missing_skills" }

func (f *missingSkillsFilter) Disable(string) {}

func (f *missingSkillsFilter) IsEnabled() bool { return true }

func (f *missingSkillsFilter) Apply(_ context.Context, postings []*jobs.Posting) ([]*jobs.Posting, Step, error) {
	kept, step := keep(postings, func(p *jobs.Posting) bool {
		return strings.TrimSpace(p.Skills) != ""
	})
	return kept, step, nil
}
