package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New("test-key", "gemini-flash-latest", zap.NewNop())
	require.NoError(t, err)
	c.baseURL = url
	c.sleep = func(time.Duration) {} // sem espera nos testes
	return c
}

func TestNew_ExigeChave(t *testing.T) {
	_, err := New("", "gemini-flash-latest", zap.NewNop())
	assert.Error(t, err)
}

func TestGenerateContent_Sucesso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-flash-latest")
		_, _ = w.Write([]byte(candidateBody("resposta ok")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	out, err := c.GenerateContent(context.Background(), "prompt", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "resposta ok", out)
}

func TestGenerateContent_RetryEm503(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(candidateBody("depois do retry")))
	}))
	defer srv.Close()

	var delays []time.Duration
	c := newTestClient(t, srv.URL)
	c.sleep = func(d time.Duration) { delays = append(delays, d) }

	out, err := c.GenerateContent(context.Background(), "prompt", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "depois do retry", out)
	assert.Equal(t, int32(3), calls.Load())
	// backoff linear: 1×750ms, 2×750ms
	assert.Equal(t, []time.Duration{750 * time.Millisecond, 1500 * time.Millisecond}, delays)
}

func TestGenerateContent_NaoRepeteErroPermanente(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateContent(context.Background(), "prompt", nil, "")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateContent_ErroEmbutidoNoCorpo(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// status 200 mas com erro no corpo conta como transitório
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateContent(context.Background(), "prompt", nil, "")
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExtractJSON(t *testing.T) {
	raw, ok := ExtractJSON("```json\n{\"match\": true}\n```")
	require.True(t, ok)
	assert.JSONEq(t, `{"match": true}`, string(raw))

	raw, ok = ExtractJSON(`{"match": false}`)
	require.True(t, ok)
	assert.JSONEq(t, `{"match": false}`, string(raw))

	// cerca sem a dica de linguagem
	raw, ok = ExtractJSON("```\n[1,2]\n```")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(raw))

	_, ok = ExtractJSON("não tem json aqui")
	assert.False(t, ok)
}

func TestNormalizeModelName(t *testing.T) {
	assert.Equal(t, "gemini-flash-latest", normalizeModelName("gemini-flash-latest"))
	assert.Equal(t, "gemini-flash-latest", normalizeModelName("models/gemini-flash-latest"))
	assert.Equal(t, "gemini-2.0-flash", normalizeModelName("publishers/google/models/gemini-2.0-flash:generateContent"))
}
