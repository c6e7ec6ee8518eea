package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything an App needs to run. Values resolve in order:
// defaults, then the optional HCL settings file, then environment
// variables, then explicit CLI flags (the zero value means "not set" for
// every numeric field here).
type Config struct {
	// ProductFile is an optional JSON product record; empty selects the
	// embedded sample product.
	ProductFile string
	// SettingsPath is an optional HCL settings file.
	SettingsPath string

	OutputDir string
	LogFormat string
	LogLevel  string

	Workers        int
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	MatchThreshold float64
	RunTimeout     time.Duration

	// OpenAIKey and OpenAIModel come from the environment only; the key
	// never appears in a settings file or flag.
	OpenAIKey   string
	OpenAIModel string
}

// Defaults mirror the original service configuration.
const (
	defaultOutputDir      = "output"
	defaultLogFormat      = "text"
	defaultLogLevel       = "info"
	defaultWorkers        = 4
	defaultMaxAttempts    = 3
	defaultBaseDelay      = 1 * time.Second
	defaultMaxDelay       = 10 * time.Second
	defaultMatchThreshold = 0.3
	defaultRunTimeout     = 2 * time.Minute
)

// NewConfig fills unset fields from the settings file, the environment,
// and the defaults, then validates the result.
func NewConfig(cfg Config) (*Config, error) {
	applyEnv(&cfg)
	if cfg.SettingsPath != "" {
		if err := applySettingsFile(&cfg, cfg.SettingsPath); err != nil {
			return nil, err
		}
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = defaultMatchThreshold
	}
	if cfg.RunTimeout == 0 {
		cfg.RunTimeout = defaultRunTimeout
	}

	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("max attempts must be at least 1")
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		return nil, errors.New("max delay must not be below base delay")
	}
	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 1 {
		return nil, errors.New("match threshold must be within [0,1]")
	}
	return &cfg, nil
}

// applyEnv fills unset fields from environment variables.
func applyEnv(cfg *Config) {
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	}
	if cfg.Workers == 0 {
		cfg.Workers = envInt("PAGEGEN_WORKERS")
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = envInt("PAGEGEN_MAX_ATTEMPTS")
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = envMillis("PAGEGEN_BASE_DELAY_MS")
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = envMillis("PAGEGEN_MAX_DELAY_MS")
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = envFloat("PAGEGEN_MATCH_THRESHOLD")
	}
	if cfg.RunTimeout == 0 {
		cfg.RunTimeout = envMillis("PAGEGEN_RUN_TIMEOUT_MS")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("PAGEGEN_OUTPUT_DIR")
	}
}

func envInt(name string) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return v
}

func envMillis(name string) time.Duration {
	return time.Duration(envInt(name)) * time.Millisecond
}

func envFloat(name string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// String renders the resolved configuration without the API key.
func (c *Config) String() string {
	return fmt.Sprintf("workers=%d max_attempts=%d base_delay=%s max_delay=%s match_threshold=%.2f run_timeout=%s output_dir=%s",
		c.Workers, c.MaxAttempts, c.BaseDelay, c.MaxDelay, c.MatchThreshold, c.RunTimeout, c.OutputDir)
}
