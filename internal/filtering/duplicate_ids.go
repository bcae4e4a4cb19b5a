package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/logger"
)

type duplicateIDsFilter struct {
	disabled bool
	reason   string
	logger   *zap.Logger
}

// NewDuplicateIDs creates a filter that keeps only the first posting for every
// source-provided id. It has nothing to do when ids are assigned by the loader.
func NewDuplicateIDs(sourceHasIDs bool, log *zap.Logger) Filter {
	f := &duplicateIDsFilter{logger: logger.OrNop(log)}
	if !sourceHasIDs {
		f.Disable("ids are assigned sequentially")
	}
	return f
}

func (f *duplicateIDsFilter) Name() string { return "duplicate_ids" }

func (f *duplicateIDsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicateIDsFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicateIDsFilter) Apply(_ context.Context, postings []*jobs.Posting) ([]*jobs.Posting, Step, error) {
	seen := make(map[int64]struct{}, len(postings))
	kept, step := keep(postings, func(p *jobs.Posting) bool {
		if _, ok := seen[p.ID]; ok {
			f.logger.Debug("dropping duplicate posting", zap.Int64("job_id", p.ID))
			return false
		}
		seen[p.ID] = struct{}{}
		return true
	})
	return kept, step, nil
}

func (f *duplicateIDsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
