package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, done, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.False(t, done)

	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, done, err := Parse([]string{
		"-product", "product.json",
		"-output", "generated",
		"-workers", "2",
		"-log-format", "JSON",
		"-log-level", "Debug",
	}, &out)
	require.NoError(t, err)
	assert.False(t, done)

	assert.Equal(t, "product.json", cfg.ProductFile)
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	cfg, done, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "pagegen")
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "xml"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestParseInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "verbose"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestParseInvalidWorkers(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-workers", "-3"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
