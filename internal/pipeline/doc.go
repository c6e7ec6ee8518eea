// Package pipeline declares the fixed content-generation graph: one node
// per stage, from product parsing through page assembly. Stages that call
// the remote model go through the retry policy; the FAQ stage reconciles
// generated answers with the authored questions through the aligner.
package pipeline
