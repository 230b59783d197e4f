// Package wager mantém o registro persistido de apostas e orquestra o
// pipeline de ingestão: classificação → extração → resolução de mercado →
// persistência → espelhamento na planilha.
package wager

import (
	"regexp"
	"strings"
	"time"
)

// Outcome é o resultado registrado de uma aposta. O vocabulário segue o da
// planilha: green/red e as variantes de meio acerto.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeGreen     Outcome = "green"
	OutcomeRed       Outcome = "red"
	OutcomeHalfGreen Outcome = "half green"
	OutcomeHalfRed   Outcome = "half red"
	OutcomeVoid      Outcome = "void"
)

// Wager é o modelo persistido no Postgres. Campos zero nos numéricos e
// strings vazias representam NULL.
type Wager struct {
	ID        int64
	HomeTeam  string
	AwayTeam  string
	MarketID  int64  // 0 = sem mercado resolvido
	Market    string // nome canônico quando resolvido, senão o rótulo bruto (só exibição)
	Odd       float64
	Units     float64
	ChatID    string
	MessageID string // chave do caminho de patch junto com ChatID
	Result    Outcome
	SheetRow  int // 0 = ainda não espelhada
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	halfGreenRe = regexp.MustCompile(`(?i)half\s*green|mei[oa]\s*green|half\s*win|meio\s*win`)
	halfRedRe   = regexp.MustCompile(`(?i)half\s*red|mei[oa]\s*red|half\s*loss|meio\s*loss`)
)

// ParseOutcome reconhece o marcador de resultado numa resposta/edição:
// palavras-chave em português e inglês primeiro (os "half" precisam vir antes
// dos emojis para "meio green 🟢" não virar green cheio), depois os emojis.
func ParseOutcome(text string) Outcome {
	if text == "" {
		return OutcomeNone
	}

	if halfGreenRe.MatchString(text) {
		return OutcomeHalfGreen
	}
	if halfRedRe.MatchString(text) {
		return OutcomeHalfRed
	}

	if strings.ContainsAny(text, "🟢✅✔") {
		return OutcomeGreen
	}
	if strings.ContainsAny(text, "🟥🔴⭕❌") {
		return OutcomeRed
	}
	if strings.ContainsAny(text, "🔁🔄🔃") {
		return OutcomeVoid
	}

	return OutcomeNone
}
