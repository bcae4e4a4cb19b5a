package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillmatch/internal/simgraph"
)

const (
	app = "skillmatch"

	defaultDataPath    = "data/postings.csv"
	defaultTopN        = 5
	defaultHistorySize = 5
)

type Config struct {
	Data      string           `mapstructure:"data"`
	Recommend *RecommendConfig `mapstructure:"recommend"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type RecommendConfig struct {
	TopN        int     `mapstructure:"top-n"`
	Threshold   float64 `mapstructure:"threshold"`
	Prefilter   bool    `mapstructure:"prefilter"`
	HistorySize int     `mapstructure:"history-size"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxSkills    int    `mapstructure:"max-skills"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillmatch recommends job postings that match your skills or resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetEnvPrefix(app)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("data", defaultDataPath)
	viper.SetDefault("recommend.top-n", defaultTopN)
	viper.SetDefault("recommend.threshold", simgraph.DefaultThreshold)
	viper.SetDefault("recommend.prefilter", true)
	viper.SetDefault("recommend.history-size", defaultHistorySize)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("data", "D", defaultDataPath, "CSV file with job postings")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, but a broken or explicitly given
	// missing one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Recommend == nil {
		config.Recommend = &RecommendConfig{TopN: defaultTopN, Threshold: simgraph.DefaultThreshold, Prefilter: true}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}

	return config, nil
}
