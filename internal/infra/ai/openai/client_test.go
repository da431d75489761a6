package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
)

func newTestServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "model": "gpt-4o",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"ok\":true}"}, "finish_reason": "stop"}]
}`

func TestGenerate_JSONModeAndImagePart(t *testing.T) {
	var seen map[string]any
	srv := newTestServer(t, http.StatusOK, completion, &seen)
	c := NewClient("test-key", "", srv.URL+"/v1", 0)

	out, err := c.Generate(context.Background(), ai.Request{
		System: "sys",
		User:   "look",
		Image:  &ai.Image{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "gpt-4o", c.Model())
	assert.Equal(t, "gpt-4o", seen["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, seen["response_format"])
	assert.Equal(t, float64(defaultMaxTokens), seen["max_tokens"])

	msgs := seen["messages"].([]any)
	require.Len(t, msgs, 2)
	parts := msgs[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	img := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/png;base64,AQID", img["url"])
}

func TestGenerate_ReasoningModelUsesCompletionTokens(t *testing.T) {
	var seen map[string]any
	srv := newTestServer(t, http.StatusOK, completion, &seen)
	c := NewClient("test-key", "o3-mini", srv.URL+"/v1", 1000)

	_, err := c.Generate(context.Background(), ai.Request{System: "s", User: "u"})

	require.NoError(t, err)
	assert.Equal(t, float64(1000), seen["max_completion_tokens"])
	assert.NotContains(t, seen, "max_tokens")
}

func TestGenerate_ErrorsAreProviderFailures(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests,
		`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`, nil)
	c := NewClient("test-key", "gpt-4o-mini", srv.URL+"/v1", 0)

	_, err := c.Generate(context.Background(), ai.Request{System: "s", User: "u"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrProviderFailure)
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"id":"x","choices":[]}`, nil)
	c := NewClient("test-key", "", srv.URL+"/v1", 0)

	_, err := c.Generate(context.Background(), ai.Request{System: "s", User: "u"})

	assert.ErrorIs(t, err, ai.ErrProviderFailure)
}
