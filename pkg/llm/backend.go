// Package llm provides text generation for game reviews, abstracted behind
// a Backend interface so the review service can be tested without a model.
package llm

import "context"

// Request defines the input for a generation call.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Response holds the result of a generation call.
type Response struct {
	Content string
	Model   string
}

// Backend defines the interface for LLM text generation.
type Backend interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}
