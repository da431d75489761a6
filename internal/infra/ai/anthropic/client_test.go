package anthropic

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

func serve(t *testing.T, status int, body string, seen *map[string]any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func TestGenerate(t *testing.T) {
	var seen map[string]any
	url := serve(t, http.StatusOK, `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
		"content": [{"type": "text", "text": "{\"ok\":true}"}],
		"stop_reason": "end_turn", "usage": {"input_tokens": 1, "output_tokens": 1}
	}`, &seen)
	c := NewClient("test-key", "claude-test", url, 512)

	out, err := c.Generate(context.Background(), ai.Request{
		System: "sys",
		User:   "look",
		Image:  &ai.Image{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "claude-test", seen["model"])
	assert.Equal(t, "sys", seen["system"])
	assert.Equal(t, float64(512), seen["max_tokens"])

	msgs := seen["messages"].([]any)
	require.Len(t, msgs, 1)
	content := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	assert.Equal(t, "image", content[0].(map[string]any)["type"])
	source := content[0].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "AQID", source["data"])
	assert.Equal(t, "image/jpeg", source["media_type"])
}

func TestGenerate_RateLimited(t *testing.T) {
	url := serve(t, http.StatusTooManyRequests,
		`{"type":"error","error":{"type":"rate_limit_error","message":"Number of requests has exceeded your rate limit"}}`, nil)
	c := NewClient("test-key", "", url, 0)

	_, err := c.Generate(context.Background(), ai.Request{System: "s", User: "u"})

	assert.ErrorIs(t, err, ai.ErrProviderFailure)
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
	assert.Equal(t, defaultModel, c.Model())
}
