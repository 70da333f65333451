package interfaces

import "context"

// GenAI is the text-generation capability used by the pipeline
// services. A nil GenAI means no backend is configured and callers
// switch to their deterministic fallback; a failed call is treated the
// same way, never retried.
type GenAI interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
