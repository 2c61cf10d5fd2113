package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt. Question generation
// is single-turn, so a request is one system prompt plus one user prompt.
type Provider interface {
	// Generate sends the prompt and returns the model's output. When the
	// request carries a Schema the output is validated against it before
	// being returned.
	Generate(ctx context.Context, req Request) (json.RawMessage, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user-turn content.
	Prompt string

	// Schema, when set, makes the provider request structured output and
	// validate the result against it.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero means
	// deterministic.
	Temperature float64
}

// Schema is the JSON Schema a response must conform to.
type Schema struct {
	// Name identifies the schema. It doubles as the structured-output
	// name for providers that require one. Kebab-case.
	Name string

	// Description guides the model toward the intended shape.
	Description string

	// Definition is the schema as a map, marshalable to JSON Schema.
	Definition map[string]any
}
