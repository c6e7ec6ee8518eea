// Package dag is the execution layer of the pipeline. It builds a validated
// directed acyclic graph from declared nodes and executes the nodes
// concurrently against a shared run state, respecting dependency order
// under a bounded worker pool.
//
// A Graph carries per-run scheduling state and is built fresh for every
// invocation; nothing in this package persists across runs.
package dag
