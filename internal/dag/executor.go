package dag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kasparro/pagegen/internal/ctxlog"
	"github.com/kasparro/pagegen/internal/runstate"
)

// DefaultWorkers bounds the pool when the caller doesn't. Most nodes block
// on remote calls, so a small pool is enough.
const DefaultWorkers = 4

// Executor runs a built graph to completion against a run state. Construct
// one per run; it is not reusable.
type Executor struct {
	graph   *Graph
	workers int
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewExecutor prepares an executor for the given graph. workers <= 0 falls
// back to DefaultWorkers; timeout <= 0 means no overall deadline.
func NewExecutor(graph *Graph, workers int, timeout time.Duration) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{graph: graph, workers: workers, timeout: timeout}
}

// Run executes every node in dependency order, dispatching mutually
// independent ready nodes across the worker pool. A failed node takes down
// only its own downstream subtree; independent branches run to completion
// and the caller gets whatever state they produced, together with an
// aggregated error naming each failed node.
func (e *Executor) Run(ctx context.Context, state *runstate.State) error {
	logger := ctxlog.FromContext(ctx)
	defer state.Abort()

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	readyChan := make(chan *Node, len(e.graph.Nodes))

	// Seed roots in topological order so a single worker reproduces the
	// precomputed ordering exactly.
	rootCount := 0
	for _, id := range e.graph.Order {
		node := e.graph.Nodes[id]
		if node.depCount.Load() == 0 {
			readyChan <- node
			rootCount++
		}
	}
	logger.Debug("Executor seeded root nodes.", "count", rootCount, "workers", e.workers)

	e.wg.Add(len(e.graph.Nodes))
	for i := 0; i < e.workers; i++ {
		go e.worker(runCtx, state, readyChan, i)
	}

	allDone := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(allDone)
	}()

	select {
	case <-allDone:
		close(readyChan)
	case <-runCtx.Done():
		// Outstanding workers are abandoned; aborting the state releases
		// any of them blocked on a read so they drain eventually.
		state.Abort()
		logger.Error("Run deadline exceeded, abandoning outstanding nodes.")
		return fmt.Errorf("%w (deadline %s)", ErrRunTimeout, e.timeout)
	}

	return e.collectFailures(ctx)
}

// worker is the processing loop for one pool slot.
func (e *Executor) worker(ctx context.Context, state *runstate.State, readyChan chan *Node, workerID int) {
	logger := ctxlog.FromContext(ctx)

	for node := range readyChan {
		nodeLogger := logger.With("worker", workerID, "node", node.ID)

		if ctx.Err() != nil {
			if node.skip(ctx.Err()) {
				e.wg.Done()
				e.skipDependents(ctx, node)
			}
			continue
		}

		nodeLogger.Debug("Worker picked up node.")
		node.setState(Running)

		outputs, err := node.Func(ctxlog.WithLogger(ctx, nodeLogger), state)
		if err == nil {
			err = e.publish(node, outputs, state)
		}

		if err != nil {
			nodeLogger.Error("Node execution failed.", "error", err)
			node.setState(Failed)
			node.Error = &NodeError{NodeID: node.ID, Err: err}
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		nodeLogger.Debug("Node execution succeeded.")
		node.setState(Done)

		for _, dependent := range node.Dependents {
			if dependent.depCount.Add(-1) == 0 {
				readyChan <- dependent
			}
		}
		e.wg.Done()
	}
}

// publish writes a node's outputs into the run state, enforcing that the
// node produced exactly the keys it declared.
func (e *Executor) publish(node *Node, outputs map[string]any, state *runstate.State) error {
	if len(outputs) != len(node.Outputs) {
		return fmt.Errorf("declared %d output(s), produced %d", len(node.Outputs), len(outputs))
	}
	for _, key := range node.Outputs {
		value, ok := outputs[key]
		if !ok {
			return fmt.Errorf("declared output %q was not produced", key)
		}
		if err := state.Write(key, value); err != nil {
			return err
		}
	}
	return nil
}

// skipDependents recursively fails every downstream node of a failed one.
// Independent branches are untouched.
func (e *Executor) skipDependents(ctx context.Context, node *Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		if dependent.skip(fmt.Errorf("skipped due to upstream failure of %q", node.ID)) {
			logger.Warn("Skipping node due to upstream failure.", "node", dependent.ID, "failed_dependency", node.ID)
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		}
	}
}

// collectFailures aggregates the run outcome: nil if everything completed,
// otherwise an error naming each node that genuinely failed (skipped nodes
// are symptoms, not causes) wrapping the first root cause.
func (e *Executor) collectFailures(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var failedIDs []string
	var rootCause error
	for _, id := range e.graph.Order {
		node := e.graph.Nodes[id]
		if node.State() != Failed {
			continue
		}
		logger.Error("Node failed.", "node", node.ID, "error", node.Error)
		var nodeErr *NodeError
		if errors.As(node.Error, &nodeErr) {
			failedIDs = append(failedIDs, node.ID)
			if rootCause == nil {
				rootCause = node.Error
			}
		}
	}

	if rootCause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failedIDs, ", "), rootCause)
	}
	return nil
}
