// Package app wires one pipeline invocation end to end: resolve
// configuration, construct the remote client and graph, execute it, and
// persist whatever pages completed.
package app
