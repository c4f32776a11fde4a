package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds all opinionsplit settings
type Config struct {
	Split       SplitConfig       `yaml:"split" mapstructure:"split"`
	Ingest      IngestConfig      `yaml:"ingest" mapstructure:"ingest"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SplitConfig holds the switches exposed to callers of the splitter
type SplitConfig struct {
	IncludeConcurring    bool `yaml:"include_concurring" mapstructure:"include_concurring"`
	IncludeSecondDissent bool `yaml:"include_second_dissent" mapstructure:"include_second_dissent"`
}

// IngestConfig controls how source files become documents
type IngestConfig struct {
	MinDecisionLength int  `yaml:"min_decision_length" mapstructure:"min_decision_length"`
	DropDismissals    bool `yaml:"drop_dismissals" mapstructure:"drop_dismissals"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the split result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	Format  string `yaml:"format" mapstructure:"format"` // jsonl or json
}

// Output formats
const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ".opinionsplit/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".opinionsplit", "cache")
	}

	return &Config{
		Split: SplitConfig{
			IncludeConcurring:    true,
			IncludeSecondDissent: true,
		},
		Ingest: IngestConfig{
			MinDecisionLength: 5000,
			DropDismissals:    true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Format: FormatJSONL,
		},
	}
}
