package llmclient

import "context"

// Attachment is one inline binary part of a vision request.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// VisionRequest carries everything one model call needs.
type VisionRequest struct {
	System      string
	Prompt      string
	Attachments []Attachment
	// Temperature controls sampling randomness; 0 asks for the most
	// deterministic completion the provider offers.
	Temperature float32
}

// Client is a thin, retry-free wrapper around one inference provider.
// Cross-cutting concerns (rate limiting, logging, retries) are applied
// via Middleware or by the orchestrator.
type Client interface {
	Name() string
	GenerateVision(ctx context.Context, req VisionRequest) (string, error)
	Close() error
}
