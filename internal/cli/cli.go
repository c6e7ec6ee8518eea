// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kasparro/pagegen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a resolved app.Config,
// a boolean indicating the program should exit cleanly (help requested), or
// an ExitError for invalid usage.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("pagegen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pagegen - generates FAQ, product, and comparison pages from a product record.

Usage:
  pagegen [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	productFlag := flagSet.String("product", "", "Path to a JSON product record. Empty uses the embedded sample.")
	settingsFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	outputDirFlag := flagSet.String("output", "", "Directory for generated page artifacts.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers for the executor.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "", "text", "json":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ProductFile:  *productFlag,
		SettingsPath: *settingsFlag,
		OutputDir:    *outputDirFlag,
		Workers:      *workersFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
