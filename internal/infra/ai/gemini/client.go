package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 2048
)

type Client struct {
	api       *genai.Client
	model     string
	maxTokens int32
}

// NewClient builds a Gemini API client. Construction does not contact the
// service.
func NewClient(ctx context.Context, apiKey, model, baseURL string, maxTokens int) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	api, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{api: api, model: model, maxTokens: int32(maxTokens)}, nil
}

func (c *Client) Model() string { return c.model }

// Generate asks for an application/json response with the system prompt as
// system instruction.
func (c *Client) Generate(ctx context.Context, in ai.Request) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if in.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(in.Image.Data, in.Image.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(in.User))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(in.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   c.maxTokens,
	}

	result, err := c.api.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		config,
	)
	if err != nil {
		return "", ai.Failure(c.model, statusOf(err), fmt.Errorf("generate content: %w", err))
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ai.Failure(c.model, 0, errors.New("empty response"))
	}
	return text, nil
}

func statusOf(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
