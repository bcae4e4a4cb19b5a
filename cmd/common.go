package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/ai/gemini"
	"github.com/spigell/skillmatch/internal/corpus"
	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/recommend"
	"github.com/spigell/skillmatch/internal/secrets"
)

// newSession loads the corpus, optionally narrowed to postings mentioning one
// of the keywords, and builds a fresh index and session over it.
func newSession(ctx context.Context, config *Config, keywords []string, log *zap.Logger) (*recommend.Session, error) {
	c, err := corpus.Load(ctx, corpus.Options{
		Path:     config.Data,
		Keywords: keywords,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	index := recommend.NewIndex(c)
	log.Debug("index built",
		append(logger.CorpusFields(config.Data, index.Len()), zap.Int("vocabulary", index.Vectorizer().Len()))...,
	)

	return recommend.NewSession(index, recommend.SessionOptions{
		Threshold:   &config.Recommend.Threshold,
		HistorySize: config.Recommend.HistorySize,
		Logger:      log,
	}), nil
}

func newSkillExtractor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.SkillExtractor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	extractorLogger := logger.WithFields(log, logger.CommonFields("gemini", generator.Model())...)

	return gemini.NewSkillExtractor(generator, cfg.Gemini.MaxSkills, cfg.Gemini.MaxLogLength, extractorLogger), nil
}

func postingLine(p *jobs.Posting) string {
	line := "- " + p.Label()
	if salary := p.Salary(); salary != "" {
		line += " | " + salary
	}
	return line
}

func printMatches(w io.Writer, matches []recommend.Match) {
	fmt.Fprintln(w, "\nRecommended jobs:")
	for _, m := range matches {
		fmt.Fprintf(w, "%s | match=%.2f\n", postingLine(m.Posting), m.Score)
	}
}

func printRelated(w io.Writer, to *jobs.Posting, related []recommend.Related) {
	fmt.Fprintf(w, "\nJobs related to %q:\n", to.Title)
	if len(related) == 0 {
		fmt.Fprintln(w, "- nothing similar enough")
		return
	}
	for _, r := range related {
		fmt.Fprintf(w, "%s | similarity=%.2f\n", postingLine(r.Posting), r.Similarity)
	}
}

func printRecent(w io.Writer, recent []*jobs.Posting) {
	fmt.Fprintln(w, "\nRecently viewed jobs:")
	if len(recent) == 0 {
		fmt.Fprintln(w, "- none yet")
		return
	}
	for _, p := range recent {
		fmt.Fprintln(w, postingLine(p))
	}
}
