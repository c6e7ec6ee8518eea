// Package llm is the remote-call port of the pipeline. It defines the
// narrow Client interface every generation stage depends on, an OpenAI
// chat-completion implementation of it, and the transient/fatal error
// classification the retry layer consumes.
package llm
