// Package gemini implementa o cliente REST da API generateContent do Google
// Gemini, usado pela extração de apostas e pela classificação de mercados.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	maxAttempts    = 3
	baseDelay      = 750 * time.Millisecond
)

type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
	sleep   func(time.Duration) // injetável nos testes
	log     *zap.Logger
}

// New constrói o cliente. A chave é obrigatória: falta de credencial derruba
// o serviço na subida, antes de qualquer mensagem ser processada.
func New(apiKey, model string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: GEMINI_API_KEY não configurado")
	}
	if model == "" {
		model = "gemini-flash-latest"
	}
	return &Client{
		apiKey:  apiKey,
		model:   normalizeModelName(model),
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		sleep:   time.Sleep,
		log:     log,
	}, nil
}

// payloads da API
type apiRequest struct {
	Contents         []apiContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type genConfig struct {
	Temperature float64 `json:"temperature"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent envia um prompt (com imagem inline opcional) e devolve o
// texto concatenado da primeira candidata. Temperatura baixa para tornar a
// extração o mais determinística possível.
//
// Erros transitórios (429/500/502/503/504 ou erro embutido no corpo) são
// repetidos com backoff linear (tentativa × delay base) até maxAttempts;
// qualquer outro erro falha imediatamente.
func (c *Client) GenerateContent(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	parts := []apiPart{{Text: prompt}}
	if len(image) > 0 {
		parts = append(parts, apiPart{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	body, err := json.Marshal(apiRequest{
		Contents:         []apiContent{{Role: "user", Parts: parts}},
		GenerationConfig: genConfig{Temperature: 0.1},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.GeminiRetries.Inc()
			c.sleep(time.Duration(attempt-1) * baseDelay)
		}

		text, retryable, err := c.doRequest(ctx, endpoint, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
		c.log.Warn("gemini: tentativa falhou", zap.Int("attempt", attempt), zap.Error(err))
	}

	return "", fmt.Errorf("gemini: sem resposta após %d tentativas: %w", maxAttempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode != http.StatusOK {
		return "", isTransientStatus(resp.StatusCode),
			fmt.Errorf("gemini: API respondeu %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("gemini: resposta não é JSON válido: %w", err)
	}

	if parsed.Error != nil && parsed.Error.Message != "" {
		// erro embutido no corpo conta como transitório, igual a um 503
		return "", true, fmt.Errorf("gemini: API retornou erro: %s", parsed.Error.Message)
	}

	var b strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", false, errors.New("gemini: resposta sem conteúdo textual")
	}
	return out, false, nil
}

func isTransientStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

var fencedJSONRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// ExtractJSON aceita a resposta cercada em bloco de código ou JSON puro.
// Devolve false quando nada parseável foi encontrado.
func ExtractJSON(raw string) (json.RawMessage, bool) {
	candidate := raw
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	}
	candidate = strings.TrimSpace(candidate)

	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// normalizeModelName aceita o nome puro, com prefixo models/ ou o caminho
// completo de publisher, e reduz tudo ao identificador do modelo.
func normalizeModelName(model string) string {
	trimmed := strings.TrimSpace(model)
	if i := strings.LastIndex(trimmed, "/models/"); i >= 0 {
		trimmed = trimmed[i+len("/models/"):]
	}
	trimmed = strings.TrimPrefix(trimmed, "models/")
	return strings.TrimSuffix(trimmed, ":generateContent")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
