package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal_VirgulaEPonto(t *testing.T) {
	a, okA := ParseDecimal("2,5")
	b, okB := ParseDecimal("2.5")
	assert.True(t, okA)
	assert.True(t, okB)
	assert.Equal(t, a, b)

	_, ok := ParseDecimal("abc")
	assert.False(t, ok)
	_, ok = ParseDecimal("")
	assert.False(t, ok)
}

func TestExtractUnits(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		units float64
		ok    bool
	}{
		{"sufixo u", "aposta 2u no favorito", 2, true},
		{"sufixo u decimal", "1,5u na linha de kills", 1.5, true},
		{"unidades por extenso", "3 unidades nessa", 3, true},
		{"unidade singular", "1 unidade", 1, true},
		{"stake com dois pontos", "stake: 2.5", 2.5, true},
		{"sem unidades", "grande jogo hoje", 0, false},
		{"fora do limite", "150u de confiança", 0, false},
		{"zero rejeitado", "0u", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, _, ok := ExtractUnits(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.units, units)
		})
	}
}

func TestExtractUnits_RemoveTrechoCasado(t *testing.T) {
	_, rest, ok := ExtractUnits("Team A vs Team B 2u @1.85")
	assert.True(t, ok)
	assert.NotContains(t, rest, "2u")
	assert.Contains(t, rest, "@1.85")
}

func TestExtractOdd(t *testing.T) {
	odd, ok := ExtractOdd("entrada @1.85 agora")
	assert.True(t, ok)
	assert.Equal(t, 1.85, odd)

	odd, ok = ExtractOdd("odd: 2,10")
	assert.True(t, ok)
	assert.Equal(t, 2.10, odd)

	odd, ok = ExtractOdd("cotacao 1.5")
	assert.True(t, ok)
	assert.Equal(t, 1.5, odd)

	odd, ok = ExtractOdd("cotação 1.5")
	assert.True(t, ok)
	assert.Equal(t, 1.5, odd)

	// número solto não é odd
	_, ok = ExtractOdd("ganhou 3 partidas")
	assert.False(t, ok)
}

func TestExtractUnitsAndOdd_StakeNaoViraOdd(t *testing.T) {
	// o dígito do stake não pode ser relido como odd
	units, odd, hasUnits, hasOdd := ExtractUnitsAndOdd("2u @1.85")
	assert.True(t, hasUnits)
	assert.True(t, hasOdd)
	assert.Equal(t, 2.0, units)
	assert.Equal(t, 1.85, odd)

	units, odd, hasUnits, hasOdd = ExtractUnitsAndOdd("aumentando pra 3 unidades")
	assert.True(t, hasUnits)
	assert.False(t, hasOdd)
	assert.Equal(t, 3.0, units)
	assert.Equal(t, 0.0, odd)
}
