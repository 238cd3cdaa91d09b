package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "v0.3.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "draftcheck",
	Short: "draftcheck - Fabrication detection and quality gates for generated drafts",
	Long: `draftcheck validates machine-generated technical documents (case studies,
reference architectures) against the talk transcript they were written from.

Checkpoints run in order and stop at the first critical finding:
  transcript quality, subject consistency, structure, format, claims, depth

Every number in a draft must be traceable to the transcript.

Exit codes: 0 = pass, 1 = warning, 2 = critical or error.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitPass
	}

	var status *exitStatus
	if errors.As(err, &status) {
		return status.code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitCritical
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of draftcheck.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("draftcheck %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.draftcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("profile", "", "content profile id (default from config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-mode", "", "log encoder (dev, prod)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("profiles.default", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.mode", rootCmd.PersistentFlags().Lookup("log-mode"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".draftcheck"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DRAFTCHECK_*
	viper.SetEnvPrefix("DRAFTCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every configuration key so environment
// variables resolve during Unmarshal.
func setDefaults(cfg *model.Config) {
	defaults := map[string]interface{}{
		"log.mode":                   cfg.Log.Mode,
		"log.level":                  cfg.Log.Level,
		"profiles.file":              cfg.Profiles.File,
		"profiles.default":           cfg.Profiles.Default,
		"cache.enabled":              cfg.Cache.Enabled,
		"cache.dir":                  cfg.Cache.Dir,
		"cache.memory_ttl":           cfg.Cache.MemoryTTL,
		"cache.disk_ttl":             cfg.Cache.DiskTTL,
		"concurrency.workers":        cfg.Concurrency.Workers,
		"review.enabled":             cfg.Review.Enabled,
		"review.provider":            cfg.Review.Provider,
		"review.model":               cfg.Review.Model,
		"review.api_key":             cfg.Review.APIKey,
		"review.base_url":            cfg.Review.BaseURL,
		"review.timeout":             cfg.Review.Timeout,
		"review.max_tokens":          cfg.Review.MaxTokens,
		"review.requests_per_second": cfg.Review.RequestsPerSecond,
		"review.burst":               cfg.Review.Burst,
		"metrics.textfile":           cfg.Metrics.Textfile,
		"output.verbose":             cfg.Output.Verbose,
		"output.color":               cfg.Output.Color,
		"output.markdown":            cfg.Output.Markdown,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// loadConfig resolves the effective configuration.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if cfg.Review.APIKey == "" && strings.EqualFold(cfg.Review.Provider, "openai") {
		cfg.Review.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if noColor {
		cfg.Output.Color = false
	}
	return cfg, nil
}
