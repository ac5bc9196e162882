package model

import "time"

// Config is the full runtime configuration.
//
// Note: the trusted image-host and data-URI subtype allow-lists are
// deliberately NOT part of this struct. They are compiled into the
// resolve package so the security boundary cannot be widened by a
// config file or environment variable.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// HTTPConfig controls the source-document fetcher.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy" json:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy" json:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy" json:"no_proxy,omitempty"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`
}

// CacheConfig controls the fetched-document cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch workers and fetch rate limits.
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" json:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// LLMConfig controls the optional report summarizer.
type LLMConfig struct {
	Provider       string `yaml:"provider" json:"provider,omitempty"` // "openai", "ollama", "" (disabled)
	Model          string `yaml:"model" json:"model,omitempty"`
	APIKey         string `yaml:"-" json:"-"` // environment only, never persisted
	BaseURL        string `yaml:"base_url" json:"base_url,omitempty"`
	StrictEvidence bool   `yaml:"strict_evidence" json:"strict_evidence"`
}

// DefaultConfig returns the built-in defaults. Every layer above
// (config file, env vars, flags) overrides these.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Citelens/0.1 (+https://github.com/citelens/citelens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.citelens/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:       "",
			StrictEvidence: true,
		},
	}
}
