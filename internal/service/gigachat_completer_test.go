package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faqbot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gigaChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestGigaChatCompleter(t *testing.T, status int, body string, seen *gigaChatRequest) *GigaChatCompleter {
	t.Helper()

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic giga-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "giga-token",
			"expires_at":   time.Now().Add(time.Hour).UnixMilli(),
		})
	}))
	t.Cleanup(auth.Close)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer giga-token", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)

	c, err := NewGigaChatCompleter(context.Background(), &config.GigaChatConfig{
		APIKey:  "giga-key",
		Scope:   "GIGACHAT_API_PERS",
		Model:   "GigaChat-Test",
		BaseURL: api.URL,
		AuthURL: auth.URL,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGigaChatCompleter_Success(t *testing.T) {
	var seen gigaChatRequest
	c := newTestGigaChatCompleter(t, http.StatusOK, `{
		"choices": [{"index": 0, "message": {"role": "assistant", "content": " Sessions are weekly. "}, "finish_reason": "stop"}],
		"model": "GigaChat-Test"
	}`, &seen)

	got, err := c.Complete(context.Background(), "how often?", "only Iron Lady")
	require.NoError(t, err)
	assert.Equal(t, "Sessions are weekly.", got)

	assert.Equal(t, "GigaChat-Test", seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "only Iron Lady", seen.Messages[0].Content)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Equal(t, "how often?", seen.Messages[1].Content)
}

func TestGigaChatCompleter_NoChoicesIsMalformed(t *testing.T) {
	c := newTestGigaChatCompleter(t, http.StatusOK, `{"choices": []}`, nil)

	_, err := c.Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGigaChatCompleter_EmptyContentIsMalformed(t *testing.T) {
	c := newTestGigaChatCompleter(t, http.StatusOK, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": "  "}}]}`, nil)

	_, err := c.Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGigaChatCompleter_ServerErrorIsNetwork(t *testing.T) {
	c := newTestGigaChatCompleter(t, http.StatusBadGateway, `upstream down`, nil)

	_, err := c.Complete(context.Background(), "q", "s")
	assert.ErrorIs(t, err, ErrNetwork)
}
