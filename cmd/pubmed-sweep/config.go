// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-sweep/pkg/types"
)

func init() {
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.user_agent", "pubmed-sweep/0.1")
	viper.SetDefault("fetch.tool", "pubmed-sweep")
	viper.SetDefault("fetch.batch_size", 200)
	viper.SetDefault("fetch.pacing_delay", time.Second)
	viper.SetDefault("fetch.max_query_len", 2000)
	viper.SetDefault("fetch.retry.max_attempts", 5)
	viper.SetDefault("fetch.retry.base_delay", time.Second)
	viper.SetDefault("fetch.retry.multiplier", 2.0)
	viper.SetDefault("dedup.threshold", 90)
	viper.SetDefault("history.dir", ".pubmed-sweep")
}

// loadConfig resolves the pipeline configuration from viper, with API
// credentials falling back to the .secrets/ directory.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			BaseURL:     viper.GetString("fetch.base_url"),
			APIKey:      secretDefault("ncbi-api-key", viper.GetString("fetch.api_key")),
			Email:       secretDefault("ncbi-email", viper.GetString("fetch.email")),
			Tool:        viper.GetString("fetch.tool"),
			BatchSize:   viper.GetInt("fetch.batch_size"),
			PacingDelay: viper.GetDuration("fetch.pacing_delay"),
			MaxQueryLen: viper.GetInt("fetch.max_query_len"),
			Retry: types.RetryConfig{
				MaxAttempts: viper.GetInt("fetch.retry.max_attempts"),
				BaseDelay:   viper.GetDuration("fetch.retry.base_delay"),
				Multiplier:  viper.GetFloat64("fetch.retry.multiplier"),
			},
		},
		Dedup: types.DedupConfig{
			Threshold: viper.GetInt("dedup.threshold"),
		},
		History: types.HistoryConfig{
			Dir: viper.GetString("history.dir"),
		},
	}
}
