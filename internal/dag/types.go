package dag

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kasparro/pagegen/internal/runstate"
)

// NodeFunc is the contract every pipeline stage satisfies: read whatever
// upstream artifacts it needs from the run state, return its named outputs.
type NodeFunc func(ctx context.Context, state *runstate.State) (map[string]any, error)

// NodeSpec declares one unit of work for registration with a Builder.
type NodeSpec struct {
	// ID is the unique identifier for the node within a run.
	ID string
	// Deps lists the IDs of nodes that must complete first.
	Deps []string
	// Outputs lists the run-state keys this node will write. Each key may
	// be claimed by exactly one node in the graph.
	Outputs []string
	// Func performs the work.
	Func NodeFunc
}

// Node is a single vertex in a built graph.
type Node struct {
	ID      string
	Deps    []*Node
	Outputs []string
	Func    NodeFunc

	// Dependents are successors in registration order, so scheduling ties
	// break deterministically.
	Dependents []*Node

	// Error stores whatever failed or skipped this node.
	Error error

	// depCount is the number of unmet dependencies, decremented as
	// predecessors complete.
	depCount atomic.Int32
	// state is the node's execution state.
	state atomic.Int32
	// skipOnce guarantees a node is skipped at most once even when several
	// failed predecessors race to mark it.
	skipOnce sync.Once
}

// State reports the node's current execution state.
func (n *Node) State() NodeState {
	return NodeState(n.state.Load())
}

func (n *Node) setState(s NodeState) {
	n.state.Store(int32(s))
}

// skip marks the node failed exactly once, returning true on the first call.
func (n *Node) skip(err error) bool {
	first := false
	n.skipOnce.Do(func() {
		n.setState(Failed)
		n.Error = err
		first = true
	})
	return first
}

// NodeState is the execution state of a node.
type NodeState int32

const (
	// Pending indicates the node is waiting on dependencies.
	Pending NodeState = iota
	// Running indicates a worker is executing the node.
	Running
	// Done indicates successful completion.
	Done
	// Failed indicates the node failed or was skipped.
	Failed
)

// Graph is the validated, immutable-shape DAG plus its precomputed
// topological ordering. Node scheduling counters are per-run state, so a
// Graph must not be reused across Executor runs.
type Graph struct {
	// Nodes is keyed by node ID.
	Nodes map[string]*Node
	// Order is the deterministic topological ordering of all node IDs.
	Order []string
}
