package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

const (
	defaultModel     = "gpt-4o"
	defaultMaxTokens = 2048
)

type Client struct {
	*openai.Client
	model     string
	maxTokens int
}

// NewClient builds a chat-completions client. baseURL is optional and
// points the client at a compatible gateway.
func NewClient(apiKey, model, baseURL string, maxTokens int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), model: model, maxTokens: maxTokens}
}

func (c *Client) Model() string { return c.model }

// Generate sends one chat completion in JSON mode. Images go in as a
// data-URI image part next to the user text.
func (c *Client) Generate(ctx context.Context, in ai.Request) (string, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: in.User}
	if in.Image != nil {
		user = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: in.User},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL:    in.Image.DataURI(),
					Detail: openai.ImageURLDetailAuto,
				}},
			},
		}
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: in.System},
			user,
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(c.model) {
		req.MaxCompletionTokens = c.maxTokens
	} else {
		req.MaxTokens = c.maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", ai.Failure(c.model, statusOf(err), fmt.Errorf("create chat completion: %w", err))
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ai.Failure(c.model, 0, errors.New("empty completion"))
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
