package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
)

var relatedCmd = &cobra.Command{
	Use:   "related",
	Short: "Show jobs similar to the given one across the whole dataset",
	Run: func(cmd *cobra.Command, _ []string) {
		runRelated(cmd)
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)

	relatedCmd.Flags().Int64P("id", "i", 0, "job id to look up")
	relatedCmd.Flags().Float64P("threshold", "t", 0, "similarity a related job must exceed (default from config, 0.55)")
	relatedCmd.MarkFlagRequired("id")
}

func runRelated(cmd *cobra.Command) {
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

	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		logger.Fatal("reading job id", zap.Error(err))
	}

	session, err := newSession(ctx, config, nil, logger)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err))
	}

	posting := session.Index().Corpus().FindByID(id)
	if posting == nil {
		logger.Info("exiting", zap.String("reason", "unknown job id"), zap.Int64("job_id", id))
		return
	}

	if err := showRelated(cmd.OutOrStdout(), session, posting); err != nil {
		logger.Fatal("finding related jobs", zap.Error(err))
	}
}
