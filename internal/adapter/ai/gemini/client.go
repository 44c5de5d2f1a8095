// Package gemini implements the AIClient port against Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/prepforge/ai-interview-coach/internal/domain"
)

// Client wraps the genai SDK for one-shot text generation.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Gemini client for the given API key and model.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key required", domain.ErrInvalidArgument)
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: cl, model: model}, nil
}

// GenerateText sends a single prompt and returns the raw response text.
// Quota and timeout failures are mapped onto the domain error taxonomy so
// callers can treat them uniformly.
func (c *Client) GenerateText(ctx domain.Context, prompt string) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", classify(err)
	}
	text := result.Text()
	if text == "" {
		// Content filtering and safety blocks surface as empty responses.
		return "", fmt.Errorf("%w: empty gemini response", domain.ErrSchemaInvalid)
	}
	return text, nil
}

func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	default:
		return fmt.Errorf("gemini generate: %w", err)
	}
}
