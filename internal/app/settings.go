package app

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// settingsFile is the decoded shape of the optional HCL settings file.
// Every attribute is optional; nil means "keep the current value".
type settingsFile struct {
	Workers        *int     `hcl:"workers,optional"`
	MaxAttempts    *int     `hcl:"max_attempts,optional"`
	BaseDelayMs    *int     `hcl:"base_delay_ms,optional"`
	MaxDelayMs     *int     `hcl:"max_delay_ms,optional"`
	MatchThreshold *float64 `hcl:"match_threshold,optional"`
	RunTimeoutMs   *int     `hcl:"run_timeout_ms,optional"`
	OutputDir      *string  `hcl:"output_dir,optional"`
	LogFormat      *string  `hcl:"log_format,optional"`
	LogLevel       *string  `hcl:"log_level,optional"`
	OpenAIModel    *string  `hcl:"openai_model,optional"`
}

// applySettingsFile decodes path and fills fields not already set by a
// flag or environment variable.
func applySettingsFile(cfg *Config, path string) error {
	var settings settingsFile
	if err := hclsimple.DecodeFile(path, nil, &settings); err != nil {
		return fmt.Errorf("decoding settings file %s: %w", path, err)
	}

	if cfg.Workers == 0 && settings.Workers != nil {
		cfg.Workers = *settings.Workers
	}
	if cfg.MaxAttempts == 0 && settings.MaxAttempts != nil {
		cfg.MaxAttempts = *settings.MaxAttempts
	}
	if cfg.BaseDelay == 0 && settings.BaseDelayMs != nil {
		cfg.BaseDelay = time.Duration(*settings.BaseDelayMs) * time.Millisecond
	}
	if cfg.MaxDelay == 0 && settings.MaxDelayMs != nil {
		cfg.MaxDelay = time.Duration(*settings.MaxDelayMs) * time.Millisecond
	}
	if cfg.MatchThreshold == 0 && settings.MatchThreshold != nil {
		cfg.MatchThreshold = *settings.MatchThreshold
	}
	if cfg.RunTimeout == 0 && settings.RunTimeoutMs != nil {
		cfg.RunTimeout = time.Duration(*settings.RunTimeoutMs) * time.Millisecond
	}
	if cfg.OutputDir == "" && settings.OutputDir != nil {
		cfg.OutputDir = *settings.OutputDir
	}
	if cfg.LogFormat == "" && settings.LogFormat != nil {
		cfg.LogFormat = *settings.LogFormat
	}
	if cfg.LogLevel == "" && settings.LogLevel != nil {
		cfg.LogLevel = *settings.LogLevel
	}
	if cfg.OpenAIModel == "" && settings.OpenAIModel != nil {
		cfg.OpenAIModel = *settings.OpenAIModel
	}
	return nil
}
