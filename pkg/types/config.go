// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-sweep/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryConfig is an explicit retry policy for transient network failures.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first (default 5).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BaseDelay is the wait before the first retry (default 1s).
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`

	// Multiplier scales the delay after each failed attempt (default 2.0).
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// FetchConfig holds settings for the PubMed fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities endpoint root. Overridable for tests.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the NCBI API key; optional, raises the server-side rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI per E-utilities usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is the tool name sent with every request.
	Tool string `json:"tool" yaml:"tool"`

	// BatchSize is the number of identifiers per fetch call (default 200).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// PacingDelay is the fixed delay between consecutive API calls (default 1s).
	// A politeness contract with NCBI, not adaptive.
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay"`

	// MaxQueryLen is the maximum query length accepted by the server; longer
	// queries are split into chunks (default 2000).
	MaxQueryLen int `json:"max_query_len" yaml:"max_query_len"`

	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// DedupConfig holds settings for the deduplication stage.
type DedupConfig struct {
	// Threshold is the fuzzy similarity cutoff on a 0-100 scale (default 90).
	Threshold int `json:"threshold" yaml:"threshold"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Dir is the directory containing the history database (default ".pubmed-sweep").
	Dir string `json:"dir" yaml:"dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Dedup   DedupConfig   `json:"dedup" yaml:"dedup"`
	History HistoryConfig `json:"history" yaml:"history"`
}
