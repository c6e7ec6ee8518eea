// Package runstate holds every artifact produced during one pipeline run in
// a shared, thread-safe key-value container. Each key is written by exactly
// one node; reads block until the producing node has completed or the run
// is aborted.
package runstate
