package dag

import (
	"errors"
	"fmt"
)

// GraphError reports a construction-time defect: an unresolved dependency,
// a cycle, or an output key claimed by more than one node. No node executes
// once Build returns a GraphError.
type GraphError struct {
	Msg string
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return "invalid graph: " + e.Msg
}

func graphErrorf(format string, args ...any) *GraphError {
	return &GraphError{Msg: fmt.Sprintf(format, args...)}
}

// ErrRunTimeout is returned when the overall run deadline expires before
// every node completes.
var ErrRunTimeout = errors.New("run timed out before all nodes completed")

// NodeError ties a failure to the node it occurred in.
type NodeError struct {
	NodeID string
	Err    error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q: %v", e.NodeID, e.Err)
}

// Unwrap exposes the cause to errors.Is/As.
func (e *NodeError) Unwrap() error { return e.Err }
