package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/opinionsplit/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "opinionsplit v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "opinionsplit",
	Short: "Split court decisions into majority, concurring and dissenting opinions",
	Long: `opinionsplit reads the full text of court decisions and splits each one
into its separately authored opinions: the opinion of the court (signed or
per curiam), the first concurrence, and up to two dissents.

Boundaries are recovered from the conventions that introduce each opinion
("X, J., delivered the opinion of the court.", "X, J., concurring.",
"X, J., dissenting."). Documents with no recoverable majority opinion are
skipped and counted, never treated as failures.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.opinionsplit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".opinionsplit"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// OPINIONSPLIT_SPLIT_INCLUDE_CONCURRING=false and friends
	viper.SetEnvPrefix("OPINIONSPLIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("split.include_concurring", cfg.Split.IncludeConcurring)
	v.SetDefault("split.include_second_dissent", cfg.Split.IncludeSecondDissent)
	v.SetDefault("ingest.min_decision_length", cfg.Ingest.MinDecisionLength)
	v.SetDefault("ingest.drop_dismissals", cfg.Ingest.DropDismissals)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.format", cfg.Output.Format)
}

// loadConfig returns the effective configuration from all sources
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	switch cfg.Output.Format {
	case model.FormatJSON, model.FormatJSONL:
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", cfg.Output.Format, model.FormatJSONL, model.FormatJSON)
	}

	return cfg, nil
}

// applySplitFlags applies the negated switch flags a command defines
func applySplitFlags(cmd *cobra.Command, cfg *model.Config) {
	if f := cmd.Flags().Lookup("no-concurring"); f != nil && f.Changed {
		cfg.Split.IncludeConcurring = f.Value.String() != "true"
	}
	if f := cmd.Flags().Lookup("no-second-dissent"); f != nil && f.Changed {
		cfg.Split.IncludeSecondDissent = f.Value.String() != "true"
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil && f.Changed {
		cfg.Cache.Enabled = f.Value.String() != "true"
	}
}
