package pipeline

import (
	"context"
	"fmt"

	"github.com/kasparro/pagegen/internal/align"
	"github.com/kasparro/pagegen/internal/dag"
	"github.com/kasparro/pagegen/internal/llm"
	"github.com/kasparro/pagegen/internal/retry"
	"github.com/kasparro/pagegen/internal/runstate"
	"github.com/kasparro/pagegen/internal/schema"
)

// Pipeline holds the collaborators shared by every node function.
type Pipeline struct {
	client         llm.Client
	policy         retry.Policy
	matchThreshold float64
}

// New builds a pipeline around the given remote client. A zero threshold
// falls back to align.DefaultThreshold.
func New(client llm.Client, policy retry.Policy, matchThreshold float64) *Pipeline {
	if matchThreshold <= 0 {
		matchThreshold = align.DefaultThreshold
	}
	return &Pipeline{
		client:         client,
		policy:         policy,
		matchThreshold: matchThreshold,
	}
}

// Graph declares the run's node set and returns the validated DAG. The
// three assembly branches share parse_product but are otherwise
// independent, so one branch failing never blocks the others.
func (p *Pipeline) Graph(ctx context.Context) (*dag.Graph, error) {
	builder := dag.NewBuilder()

	builder.Register(dag.NodeSpec{
		ID:      NodeParseProduct,
		Outputs: []string{KeyProductA},
		Func:    p.parseProduct,
	})
	builder.Register(dag.NodeSpec{
		ID:      NodeGenerateCompetitor,
		Deps:    []string{NodeParseProduct},
		Outputs: []string{KeyProductB},
		Func:    p.generateCompetitor,
	})
	builder.Register(dag.NodeSpec{
		ID:      NodeGenerateQuestions,
		Deps:    []string{NodeParseProduct},
		Outputs: []string{KeyQuestions},
		Func:    p.generateQuestions,
	})
	builder.Register(dag.NodeSpec{
		ID:      NodeAssembleFAQ,
		Deps:    []string{NodeParseProduct, NodeGenerateQuestions},
		Outputs: []string{KeyFAQPage},
		Func:    p.assembleFAQ,
	})
	builder.Register(dag.NodeSpec{
		ID:      NodeAssembleProduct,
		Deps:    []string{NodeParseProduct},
		Outputs: []string{KeyProductPage},
		Func:    p.assembleProduct,
	})
	builder.Register(dag.NodeSpec{
		ID:      NodeAssembleComparison,
		Deps:    []string{NodeParseProduct, NodeGenerateCompetitor},
		Outputs: []string{KeyComparisonPage},
		Func:    p.assembleComparison,
	})

	return builder.Build(ctx)
}

// generate performs one remote call under the retry policy, classifying
// provider errors as transient or fatal.
func (p *Pipeline) generate(ctx context.Context, req llm.Request) (string, retry.Outcome, error) {
	return retry.Do(ctx, p.policy, llm.IsTransient, func(ctx context.Context) (string, error) {
		return p.client.Generate(ctx, req)
	})
}

// readProduct fetches a parsed product record from the run state.
func readProduct(ctx context.Context, state *runstate.State, key string) (*schema.ProductData, error) {
	v, err := state.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	product, ok := v.(*schema.ProductData)
	if !ok {
		return nil, fmt.Errorf("state key %q holds %T, expected product data", key, v)
	}
	return product, nil
}
