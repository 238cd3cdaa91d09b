package model

import "time"

// Config is the process-level configuration loaded through viper.
type Config struct {
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Profiles    ProfilesConfig    `yaml:"profiles" mapstructure:"profiles"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Review      ReviewConfig      `yaml:"review" mapstructure:"review"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Mode  string `yaml:"mode" mapstructure:"mode"`   // "dev" or "prod"
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// ProfilesConfig points at extra profile definitions.
type ProfilesConfig struct {
	File    string `yaml:"file,omitempty" mapstructure:"file"`
	Default string `yaml:"default" mapstructure:"default"`
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ReviewConfig configures the optional reviewer note.
type ReviewConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// MetricsConfig controls Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" mapstructure:"textfile"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose  bool `yaml:"verbose" mapstructure:"verbose"`
	Color    bool `yaml:"color" mapstructure:"color"`
	Markdown bool `yaml:"markdown" mapstructure:"markdown"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Mode:  "dev",
			Level: "warn",
		},
		Profiles: ProfilesConfig{
			Default: "short-form",
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Review: ReviewConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         600,
			RequestsPerSecond: 1,
			Burst:             1,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

func defaultCacheDir() string {
	return ".draftcheck/cache"
}
