package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		text string
		want Outcome
	}{
		{"🟢", OutcomeGreen},
		{"✅ bateu", OutcomeGreen},
		{"🟥", OutcomeRed},
		{"❌ não foi", OutcomeRed},
		{"🔁 cancelada", OutcomeVoid},
		{"meio green", OutcomeHalfGreen},
		{"half red", OutcomeHalfRed},
		{"meia green nessa", OutcomeHalfGreen},
		{"", OutcomeNone},
		{"grande jogo", OutcomeNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOutcome(tt.text), "texto: %q", tt.text)
	}
}

func TestParseOutcome_MeioAntesDoEmoji(t *testing.T) {
	// o "meio" tem que vencer o emoji que o acompanha
	assert.Equal(t, OutcomeHalfGreen, ParseOutcome("meio green 🟢"))
	assert.Equal(t, OutcomeHalfRed, ParseOutcome("half red 🟥"))
}
