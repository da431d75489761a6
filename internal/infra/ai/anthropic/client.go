package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

const (
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultMaxTokens = 2048
)

type Client struct {
	api       *anthropic.Client
	model     string
	maxTokens int
}

func NewClient(apiKey, model, baseURL string, maxTokens int) *Client {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	if model == "" {
		model = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{api: anthropic.NewClient(apiKey, opts...), model: model, maxTokens: maxTokens}
}

func (c *Client) Model() string { return c.model }

// Generate sends one Messages API call. The image, if any, precedes the
// text block.
func (c *Client) Generate(ctx context.Context, in ai.Request) (string, error) {
	content := make([]anthropic.MessageContent, 0, 2)
	if in.Image != nil {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, in.Image.MIMEType, in.Image.Base64()),
		))
	}
	content = append(content, anthropic.NewTextMessageContent(in.User))

	resp, err := c.api.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    in.System,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: content},
		},
	})
	if err != nil {
		return "", ai.Failure(c.model, 0, fmt.Errorf("create message: %w", err))
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			b.WriteString(*block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ai.Failure(c.model, 0, errors.New("no text content in response"))
	}
	return b.String(), nil
}
