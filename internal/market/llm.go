package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/texasgambler/bet-monitor/internal/gemini"
)

// Classifier decide se um rótulo candidato é semanticamente sinônimo de
// exatamente um dos mercados existentes. Implementado via Gemini em produção;
// qualquer falha é tratada pelo resolvedor como não-match.
type Classifier interface {
	ClassifyMarket(ctx context.Context, candidate string, existing []string) (match bool, marketName string, err error)
}

type generator interface {
	GenerateContent(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// GeminiClassifier implementa Classifier com uma chamada texto-puro.
type GeminiClassifier struct {
	client generator
}

func NewGeminiClassifier(client *gemini.Client) *GeminiClassifier {
	return &GeminiClassifier{client: client}
}

type classifyReply struct {
	Match      bool    `json:"match"`
	MarketName *string `json:"marketName"`
}

func (c *GeminiClassifier) ClassifyMarket(ctx context.Context, candidate string, existing []string) (bool, string, error) {
	if len(existing) == 0 {
		return false, "", nil
	}

	raw, err := c.client.GenerateContent(ctx, buildClassifyPrompt(candidate, existing), nil, "")
	if err != nil {
		return false, "", err
	}

	payload, ok := gemini.ExtractJSON(raw)
	if !ok {
		return false, "", fmt.Errorf("classificador retornou resposta não estruturada: %.200s", raw)
	}

	var reply classifyReply
	if err := json.Unmarshal(payload, &reply); err != nil {
		return false, "", fmt.Errorf("classificador retornou JSON fora do schema: %w", err)
	}

	if !reply.Match || reply.MarketName == nil {
		return false, "", nil
	}

	name := strings.TrimSpace(*reply.MarketName)

	// só aceita um nome devolvido verbatim da lista fornecida
	for _, existingName := range existing {
		if name == existingName {
			return true, name, nil
		}
	}
	return false, "", nil
}

func buildClassifyPrompt(candidate string, existing []string) string {
	parts := []string{
		"Você é um classificador de mercados de apostas esportivas.",
		"",
		"Dado um rótulo candidato e a lista de mercados canônicos existentes, decida se o candidato é semanticamente um sinônimo de EXATAMENTE UM mercado existente.",
		"",
		"Regras:",
		`- Aplique equivalência de direção/operador: "under kills" equivale a "Total Kills Under"; "over maps" equivale a "Total Maps Over".`,
		"- Ignore qualificadores numéricos do candidato ao comparar o tipo base (\"Over 25 kills\" casa com o mercado de over kills).",
		"- Se mais de um mercado existente puder casar, responda sem match.",
		"- marketName só pode ser um dos nomes da lista, copiado verbatim; nunca invente um nome.",
		"",
		"Responda SOMENTE um JSON válido, exatamente neste schema:",
		`{ "match": boolean, "marketName": string|null }`,
		"",
		"Candidato: " + candidate,
		"Mercados existentes:",
	}
	for _, name := range existing {
		parts = append(parts, "- "+name)
	}
	return strings.Join(parts, "\n")
}
