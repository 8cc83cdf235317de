// Package ai talks to the generative text provider and wraps its calls with
// rate-limit aware retries.
package ai

import (
	"context"
)

// MIMETypeJSON asks the provider for a structured JSON response.
const MIMETypeJSON = "application/json"

// GenerationConfig tunes a single generation call.
type GenerationConfig struct {
	Temperature      float32
	TopP             float32
	ResponseMIMEType string
}

// TextGenerator generates text for a prompt. Implementations must be safe for
// concurrent use; one instance is shared by every request.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}
