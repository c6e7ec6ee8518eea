// Package align reconciles remotely generated answers against the locally
// authored question list. Remote services reorder, reword, and decorate
// the questions they echo back, so answers are bound to their originating
// question by text similarity rather than by position.
package align
