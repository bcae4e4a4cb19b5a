package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/recommend"
	"github.com/spigell/skillmatch/internal/resume"
	"github.com/spigell/skillmatch/internal/utils"
)

const (
	PromptViewJob           = "View a job"
	PromptRecentlyViewed    = "Recently viewed jobs"
	PromptReportByCompanies = "Report by companies"
	PromptMatchesToFile     = "Dump recommendations to file"
	PromptExit              = "Exit"
	PromptBack              = "back"
)

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "What next?",
	Items: []string{PromptViewJob, PromptRecentlyViewed, PromptReportByCompanies, PromptMatchesToFile, PromptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend jobs for your skills or resume",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("skills", "s", "", "comma-separated skills. Prompted for when neither skills nor resume is set.")
	recommendCmd.Flags().StringP("resume", "r", "", "PDF resume to take skills from")
	recommendCmd.Flags().IntP("top-n", "n", defaultTopN, "how many jobs to recommend")
	recommendCmd.Flags().Float64P("threshold", "t", 0, "similarity a related job must exceed (default from config, 0.55)")
	recommendCmd.Flags().Bool("no-prefilter", false, "rank the whole dataset instead of jobs mentioning one of the skills")
	recommendCmd.Flags().Bool("no-interactive", false, "print recommendations and exit")

	viper.BindPFlag("recommend.top-n", recommendCmd.Flags().Lookup("top-n"))
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if err := applyRecommendFlags(cmd, config); err != nil {
		logger.Fatal("reading flags", zap.Error(err))
	}

	logger.Info("starting the skillmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	query, skillList, err := resolveQuery(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("getting skills", zap.Error(err))
	}

	if strings.TrimSpace(query) == "" {
		logger.Info("exiting", zap.String("reason", "no skills given"))
		return
	}

	keywords := prefilterKeywords(query, skillList, config.Recommend.Prefilter, logger)

	session, err := newSession(ctx, config, keywords, logger)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err), zap.String("hint", "set the data path with --data or the 'data' config key"))
	}

	matches := session.Recommend(query, config.Recommend.TopN)
	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs matched the given skills"))
		return
	}

	out := cmd.OutOrStdout()

	printMatches(out, matches)
	for _, m := range matches {
		session.View(m.Posting.ID)
	}

	if err := showRelated(out, session, matches[0].Posting); err != nil {
		logger.Fatal("finding related jobs", zap.Error(err))
	}

	printRecent(out, session.Recent())

	if flagBool(cmd, "no-interactive") {
		return
	}

	for {
		_, action, err := menu.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, out, session, matches, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, out io.Writer, session *recommend.Session, matches []recommend.Match, logger *zap.Logger) error {
	switch action {
	case PromptViewJob:
		return viewJob(out, session, matches)
	case PromptRecentlyViewed:
		printRecent(out, session.Recent())
		return nil
	case PromptReportByCompanies:
		postings := make([]*jobs.Posting, 0, len(matches))
		for _, m := range matches {
			postings = append(postings, m.Posting)
		}
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(postings), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", len(postings)))
		return nil
	case PromptMatchesToFile:
		filename, err := jobs.DumpToTmpFile("skillmatch_*.json", matches)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func viewJob(out io.Writer, session *recommend.Session, matches []recommend.Match) error {
	items := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		items = append(items, fmt.Sprintf("%d %s", m.Posting.ID, m.Posting.Label()))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return err
	}

	if selected == PromptBack {
		return nil
	}

	id, err := strconv.ParseInt(strings.Split(selected, " ")[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse job id from %q: %w", selected, err)
	}

	posting := session.Index().Corpus().FindByID(id)
	if posting == nil {
		return fmt.Errorf("there is no such job id %d", id)
	}

	fmt.Fprintf(out, "\n%s\n  skills: %s\n", postingLine(posting), utils.TruncateForLog(posting.Skills, 300))
	session.View(id)

	return showRelated(out, session, posting)
}

func showRelated(out io.Writer, session *recommend.Session, posting *jobs.Posting) error {
	related, err := session.Related(posting.ID)
	if err != nil {
		return err
	}
	printRelated(out, posting, related)
	return nil
}

// resolveQuery picks the skill query from the flags, a resume or the prompt.
// skillList reports whether the query is a comma-separated list of skills
// rather than free text.
func resolveQuery(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (query string, skillList bool, err error) {
	if skills := strings.TrimSpace(flagString(cmd, "skills")); skills != "" {
		return skills, true, nil
	}

	if path := strings.TrimSpace(flagString(cmd, "resume")); path != "" {
		return queryFromResume(ctx, path, config, logger)
	}

	skillsPrompt := promptui.Prompt{
		Label: "Enter your skills (comma-separated)",
		Validate: func(input string) error {
			if len(utils.SplitList(input)) == 0 {
				return errors.New("enter at least one skill")
			}
			return nil
		},
	}

	query, err = skillsPrompt.Run()
	return query, true, err
}

func queryFromResume(ctx context.Context, path string, config *Config, logger *zap.Logger) (string, bool, error) {
	text, err := resume.ExtractText(path, logger)
	if err != nil {
		return "", false, err
	}

	if text == "" || !config.AI.Enabled {
		return text, false, nil
	}

	extractor, err := newSkillExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI skill extraction", zap.Error(err))
		return text, false, nil
	}

	query, skillList := resume.Query(ctx, text, extractor, logger)
	return query, skillList, nil
}

// prefilterKeywords returns the keywords the corpus is narrowed with. Only a
// skill list is split into keywords: pieces of free resume text would match
// no skill description and empty the corpus.
func prefilterKeywords(query string, skillList, enabled bool, logger *zap.Logger) []string {
	if !enabled {
		return nil
	}
	if !skillList {
		logger.Info("skipping the keyword prefilter", zap.String("reason", "query is free text, not a skill list"))
		return nil
	}
	return utils.SplitList(query)
}

func applyRecommendFlags(cmd *cobra.Command, config *Config) error {
	if flag := cmd.Flags().Lookup("threshold"); flag != nil && flag.Changed {
		t, err := cmd.Flags().GetFloat64("threshold")
		if err != nil {
			return err
		}
		config.Recommend.Threshold = t
	}
	if flagBool(cmd, "no-prefilter") {
		config.Recommend.Prefilter = false
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func flagBool(cmd *cobra.Command, name string) bool {
	return strings.EqualFold(flagString(cmd, name), "true")
}
