package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/gemini"
	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
)

// generator é o pedaço do cliente Gemini que esta variante usa (fake nos testes).
type generator interface {
	GenerateContent(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// GeminiAnalyzer é a variante remota da extração: um request multimodal com
// prompt fixo de extração e parse da resposta como JSON.
type GeminiAnalyzer struct {
	client generator
	log    *zap.Logger
}

func NewGeminiAnalyzer(client *gemini.Client, log *zap.Logger) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client, log: log}
}

// resposta esperada do prompt de extração
type geminiDraft struct {
	HomeTeam json.RawMessage `json:"homeTeam"`
	AwayTeam json.RawMessage `json:"awayTeam"`
	Market   json.RawMessage `json:"market"`
	Odd      json.RawMessage `json:"odd"`
	Units    json.RawMessage `json:"units"`
	Sport    json.RawMessage `json:"sport"`
	Notes    json.RawMessage `json:"notes"`
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, image []byte, textContext string) Draft {
	prompt := buildExtractionPrompt(textContext, len(image) > 0)

	mimeType := ""
	if len(image) > 0 {
		mimeType = detectImageMime(image)
	}

	raw, err := a.client.GenerateContent(ctx, prompt, image, mimeType)
	if err != nil {
		a.log.Warn("gemini: falha na extração", zap.Error(err))
		metrics.ExtractionFailures.WithLabelValues("gemini").Inc()
		return Draft{Notes: "Falha ao analisar com Gemini: " + err.Error()}
	}

	payload, ok := gemini.ExtractJSON(raw)
	if !ok {
		// resposta malformada é dado, não erro
		return Draft{Notes: "Gemini retornou uma resposta não estruturada: " + snippet(raw, 500)}
	}

	var parsed geminiDraft
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return Draft{Notes: "Gemini retornou JSON fora do schema esperado: " + snippet(raw, 500)}
	}

	draft := Draft{
		HomeTeam: jsonString(parsed.HomeTeam),
		AwayTeam: jsonString(parsed.AwayTeam),
		Market:   jsonString(parsed.Market),
		Odd:      jsonNumber(parsed.Odd),
		Units:    jsonNumber(parsed.Units),
		Sport:    jsonString(parsed.Sport),
		Notes:    jsonString(parsed.Notes),
	}
	if draft.Notes == "" {
		draft.Notes = "Resultado fornecido pela API Gemini com prompt dirigido a apostas esportivas."
	}
	return draft
}

// jsonString aceita string ou null; qualquer outra coisa vira "".
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// jsonNumber aceita number ou string decimal com vírgula ou ponto.
func jsonNumber(raw json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	var parsed float64
	if err := json.Unmarshal([]byte(strings.Replace(strings.TrimSpace(s), ",", ".", 1)), &parsed); err != nil {
		return 0
	}
	return parsed
}

func detectImageMime(image []byte) string {
	mime := http.DetectContentType(image)
	switch mime {
	case "image/png", "image/jpeg", "image/webp":
		return mime
	}
	// Telegram entrega jpg na maioria dos casos
	return "image/jpeg"
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func buildExtractionPrompt(contextText string, hasImage bool) string {
	parts := []string{
		"Act like um assistente especialista em apostas esportivas e extração estruturada a partir de imagens (prints).",
		"",
		"Objetivo: Dado UM print (imagem) de uma aposta, extrair os dados e devolver SOMENTE um JSON válido, exatamente com este schema (sem chaves extras):",
		`{ "homeTeam": string|null, "awayTeam": string|null, "market": string|null, "odd": number|null, "units": number|null, "sport": string|null, "notes": string|null }`,
		"",
		"Tarefa (siga em passos):",
		"1) Valide o conteúdo: determine se a imagem é realmente um print/comprovante/slip de aposta (casa de apostas, odds, seleção, stake, cupom). Se NÃO for, retorne todos os campos como null e em \"notes\" explique o motivo.",
		"2) Se for aposta simples, identifique homeTeam e awayTeam (times/jogadores/equipes). Se não aparecerem claramente, use null.",
		`3) Se for aposta múltipla/accumulator, use literalmente o valor "multipla" para homeTeam, awayTeam e market.`,
		`4) Extraia "odd" como número. Aceite vírgula ou ponto na leitura, mas no JSON devolva como number. Se não houver odd, null.`,
		`5) Extraia "units" como número (unidades apostado), priorize os valores na legenda. Ignore moeda/símbolos; se não houver, utilize 1.`,
		`6) "sport": use APENAS o texto adicional fora do slip (ex.: legenda do print, texto da conversa). Não deduza pelo slip. Se não existir texto adicional com o esporte, retorne null.`,
		`7) "notes": descreva brevemente de onde veio cada dado (ex.: "slip", "comprovante", "interface do app") e se houve ambiguidade.`,
		"",
		`Regras para "market" (normalização obrigatória):`,
		"- Deve ser genérico e categorizável (sem números, linhas, tempo exato ou placar).",
		`- Deve estar em inglês (ex.: use "Over kills", não "Mais de abates").`,
		"- Exemplos corretos: Over kills, Under kills, Over time, Over maps, Under maps, Handicap de kills.",
		"- Exemplos incorretos: Over 25 kills, Over 23:59 minutes.",
		"",
		"Saída:",
		"- Retorne apenas o JSON (sem markdown, sem texto extra).",
		"- Use null quando não encontrar um campo; nunca chute.",
		"- Autochecagem final: JSON válido, aspas duplas, sem trailing commas, sem campos extras.",
	}

	if !hasImage {
		parts = append(parts,
			"",
			"Não há imagem nesta mensagem: extraia os dados apenas do texto abaixo.",
		)
	}

	if trimmed := strings.TrimSpace(contextText); trimmed != "" {
		parts = append(parts,
			"",
			"Texto adicional enviado junto com a imagem (pode indicar se é aposta simples ou dupla e o esporte):",
			trimmed,
		)
	}

	return strings.Join(parts, "\n")
}
