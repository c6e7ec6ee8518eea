// Package content holds the reusable content logic blocks that turn product
// records into page sections. Blocks are pure transformations dispatched
// through a closed BlockKind enum, so an unknown block is a compile-time
// impossibility rather than a runtime lookup miss.
package content
