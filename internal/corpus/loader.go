// Package corpus loads a job corpus from a postings table: schema checks,
// row filtering and identifier assignment.
package corpus

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/filtering"
	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/logger"
)

// Options control a single load.
type Options struct {
	Path string
	// Required lists columns that must be present in the source header.
	// Nil means jobs.DefaultRequiredColumns.
	Required []string
	// Keywords pre-filter postings by skill description; empty means no filtering.
	Keywords []string
	Logger   *zap.Logger
}

// Load reads the source, drops incomplete rows, applies the keyword filter and
// assigns identifiers. Sources without a job_id column get sequential 0-based
// ids in the order of the postings that survived filtering.
//
// A missing source yields *jobs.SourceNotFoundError and a source without the
// required columns yields *jobs.SchemaError; neither returns a partial corpus.
func Load(ctx context.Context, opts Options) (*jobs.Corpus, error) {
	log := logger.WithFields(opts.Logger, zap.String(logger.FieldSource, opts.Path))

	required := opts.Required
	if required == nil {
		required = jobs.DefaultRequiredColumns
	}

	log.Debug("loading jobs dataset")

	table, err := jobs.ReadCSV(opts.Path, required, log)
	if err != nil {
		return nil, err
	}

	log.Debug("read postings", zap.Int("rows", len(table.Postings)), zap.Int("malformed", table.Malformed))

	pipeline := filtering.New([]filtering.Filter{
		filtering.NewMissingSkills(),
		filtering.NewKeywords(opts.Keywords),
		filtering.NewDuplicateIDs(table.HasIDs, log),
	}, log)
	log.Debug("row filters", zap.Any("filters", pipeline.Describe()))

	postings, err := pipeline.RunFilters(ctx, table.Postings)
	if err != nil {
		return nil, err
	}

	if !table.HasIDs {
		for i, p := range postings {
			p.ID = int64(i)
		}
	}

	c := jobs.NewCorpus(postings)
	log.Info("jobs dataset loaded", zap.Int(logger.FieldPostings, c.Len()))

	return c, nil
}
