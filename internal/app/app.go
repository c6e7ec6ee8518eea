package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/kasparro/pagegen/internal/artifact"
	"github.com/kasparro/pagegen/internal/ctxlog"
	"github.com/kasparro/pagegen/internal/dag"
	"github.com/kasparro/pagegen/internal/llm"
	"github.com/kasparro/pagegen/internal/pipeline"
	"github.com/kasparro/pagegen/internal/retry"
	"github.com/kasparro/pagegen/internal/runstate"
)

// pageKeys maps each assembled page's run-state key to its page type, in
// artifact output order.
var pageKeys = []struct {
	stateKey string
	pageType string
}{
	{pipeline.KeyFAQPage, "faq"},
	{pipeline.KeyProductPage, "product"},
	{pipeline.KeyComparisonPage, "comparison"},
}

// App executes one content-generation run.
type App struct {
	cfg    *Config
	logW   io.Writer
	client llm.Client
	writer artifact.Writer
}

// Option overrides an App collaborator, mainly for tests.
type Option func(*App)

// WithClient substitutes the remote model client.
func WithClient(c llm.Client) Option {
	return func(a *App) { a.client = c }
}

// WithWriter substitutes the artifact writer.
func WithWriter(w artifact.Writer) Option {
	return func(a *App) { a.writer = w }
}

// NewApp assembles an App around the resolved configuration. Log output
// goes to logW.
func NewApp(cfg *Config, logW io.Writer, opts ...Option) *App {
	a := &App{cfg: cfg, logW: logW}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the pipeline once and writes every page that completed,
// even when another branch failed. The returned error aggregates whatever
// failed; a partial run with written artifacts still reports it.
func (a *App) Run(ctx context.Context) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.logW).With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Info("Starting content generation run.", "config", a.cfg.String())

	raw, err := a.loadProduct(ctx)
	if err != nil {
		return err
	}

	if a.client == nil {
		client, err := llm.NewOpenAIClient(a.cfg.OpenAIKey, a.cfg.OpenAIModel)
		if err != nil {
			return err
		}
		a.client = client
	}
	if a.writer == nil {
		writer, err := artifact.NewJSONWriter(a.cfg.OutputDir)
		if err != nil {
			return err
		}
		a.writer = writer
	}

	policy := retry.Policy{
		MaxAttempts: a.cfg.MaxAttempts,
		BaseDelay:   a.cfg.BaseDelay,
		MaxDelay:    a.cfg.MaxDelay,
	}
	pipe := pipeline.New(a.client, policy, a.cfg.MatchThreshold)

	graph, err := pipe.Graph(ctx)
	if err != nil {
		return err
	}

	state := runstate.New()
	if err := state.Write(pipeline.KeyRawProduct, raw); err != nil {
		return err
	}

	executor := dag.NewExecutor(graph, a.cfg.Workers, a.cfg.RunTimeout)
	runErr := executor.Run(ctx, state)

	written := a.writeArtifacts(ctx, state)

	for _, w := range state.Warnings() {
		logger.Warn("Run completed with data-quality warning.", "question", w.Question.Question, "reason", w.Reason)
	}

	if runErr != nil {
		logger.Error("Run finished with failures.", "pages_written", written, "error", runErr)
		return fmt.Errorf("pipeline run: %w", runErr)
	}
	logger.Info("Run completed successfully.", "pages_written", written)
	return nil
}

// loadProduct reads the product record from the configured file, or falls
// back to the embedded sample.
func (a *App) loadProduct(ctx context.Context) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	if a.cfg.ProductFile == "" {
		logger.Info("No product file given, using embedded sample product.")
		return sampleProduct(), nil
	}

	data, err := os.ReadFile(a.cfg.ProductFile)
	if err != nil {
		return nil, fmt.Errorf("reading product file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing product file %s: %w", a.cfg.ProductFile, err)
	}
	logger.Info("Loaded product record.", "path", a.cfg.ProductFile)
	return raw, nil
}

// writeArtifacts persists every completed page and returns how many were
// written. A write failure is logged but doesn't stop the remaining pages.
func (a *App) writeArtifacts(ctx context.Context, state *runstate.State) int {
	logger := ctxlog.FromContext(ctx)

	written := 0
	for _, page := range pageKeys {
		payload, ok := state.Get(page.stateKey)
		if !ok {
			logger.Warn("Page was not produced, skipping artifact.", "page_type", page.pageType)
			continue
		}
		if _, err := a.writer.Write(ctx, page.pageType, payload); err != nil {
			logger.Error("Failed to write page artifact.", "page_type", page.pageType, "error", err)
			continue
		}
		written++
	}
	return written
}
