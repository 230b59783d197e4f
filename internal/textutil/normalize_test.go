package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_RemoveAcentosEMinusculas(t *testing.T) {
	assert.Equal(t, "vencedor da partida", Normalize("Vencedor da Partida"))
	assert.Equal(t, "cotacao", Normalize("Cotação"))
	assert.Equal(t, "more kills", Normalize("  More   Kills "))
}

func TestNormalize_Idempotente(t *testing.T) {
	inputs := []string{"Vencedor da Partida", "Cotação Média", "  espaços   duplos  ", "já normalizado"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "entrada: %q", in)
	}
}

func TestNormalize_Vazio(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeKey_Underscores(t *testing.T) {
	assert.Equal(t, "vencedor_da_partida", NormalizeKey("Vencedor da Partida"))
	assert.Equal(t, "", NormalizeKey("  "))
}

func TestNormalizeKey_GrafiasEquivalentes(t *testing.T) {
	// duas grafias são o mesmo mercado sse as chaves coincidem
	assert.Equal(t, NormalizeKey("VENCEDOR  da partida"), NormalizeKey("vencedor da Partida"))
	assert.NotEqual(t, NormalizeKey("vencedor da partida"), NormalizeKey("vencedor do mapa"))
}
