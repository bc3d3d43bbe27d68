package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// It only focuses on the API call itself; everything else (retries,
// rate limiting, logging) is layered on via Middleware.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	// NOTE: apiKey may be empty; the genai client also reads it from env.
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if strings.TrimSpace(apiKey) != "" {
		cfg.APIKey = apiKey
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// GenerateVision sends the prompt plus inline image parts and returns
// the raw reply text. The reply is free-form: callers must treat it as
// untrusted and run it through extraction and sanitization.
func (g *GeminiClient) GenerateVision(ctx context.Context, req VisionRequest) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	parts = append(parts, &genai.Part{Text: req.Prompt})
	for _, att := range req.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: att.Data},
		})
	}

	temp := req.Temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if strings.TrimSpace(req.System) != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		return "", classify(g.model, err)
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	txt := b.String()
	if strings.TrimSpace(txt) == "" {
		return "", ErrEmptyReply
	}
	return txt, nil
}
