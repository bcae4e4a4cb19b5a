package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/utils"
)

const resumePreviewLength = 500

var resumeCmd = &cobra.Command{
	Use:   "resume <file.pdf>",
	Short: "Print the text and skills skillmatch takes from a PDF resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResume(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	query, _, err := queryFromResume(ctx, path, config, logger)
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	if query == "" {
		logger.Info("exiting", zap.String("reason", "no text found in the resume"))
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Query taken from %s:\n%s\n", path, utils.TruncateForLog(query, resumePreviewLength))
}
