package llm

import "context"

// Provider generates a completion from a system instruction and a fully
// assembled user prompt.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
