package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestGeminiAnalyzer_RespostaCompleta(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n" + `{
		"homeTeam": "FURIA",
		"awayTeam": "LOUD",
		"market": "Over kills",
		"odd": 1.85,
		"units": 2,
		"sport": "cs2",
		"notes": "slip"
	}` + "\n```"}

	a := &GeminiAnalyzer{client: gen, log: zap.NewNop()}
	d := a.Analyze(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "cs2")

	assert.Equal(t, "FURIA", d.HomeTeam)
	assert.Equal(t, "LOUD", d.AwayTeam)
	assert.Equal(t, "Over kills", d.Market)
	assert.Equal(t, 1.85, d.Odd)
	assert.Equal(t, 2.0, d.Units)
	assert.Equal(t, "cs2", d.Sport)
}

func TestGeminiAnalyzer_NumerosComoString(t *testing.T) {
	// o modelo às vezes devolve números como string com vírgula
	gen := &fakeGenerator{reply: `{"homeTeam": null, "awayTeam": null, "market": "Over maps", "odd": "1,72", "units": "1.5", "sport": null, "notes": null}`}

	a := &GeminiAnalyzer{client: gen, log: zap.NewNop()}
	d := a.Analyze(context.Background(), nil, "aposta over maps")

	assert.Equal(t, 1.72, d.Odd)
	assert.Equal(t, 1.5, d.Units)
	assert.Equal(t, "", d.HomeTeam)
}

func TestGeminiAnalyzer_FalhaDoClienteDegrada(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota excedida")}

	a := &GeminiAnalyzer{client: gen, log: zap.NewNop()}
	d := a.Analyze(context.Background(), nil, "texto")

	assert.True(t, d.Empty())
	assert.Contains(t, d.Notes, "quota excedida")
}

func TestGeminiAnalyzer_RespostaNaoEstruturada(t *testing.T) {
	gen := &fakeGenerator{reply: "desculpe, não consigo analisar essa imagem"}

	a := &GeminiAnalyzer{client: gen, log: zap.NewNop()}
	d := a.Analyze(context.Background(), nil, "texto")

	assert.True(t, d.Empty())
	assert.Contains(t, d.Notes, "não estruturada")
}

func TestGeminiAnalyzer_PromptTextoPuro(t *testing.T) {
	gen := &fakeGenerator{reply: `{"homeTeam":null,"awayTeam":null,"market":null,"odd":null,"units":null,"sport":null,"notes":"ok"}`}

	a := &GeminiAnalyzer{client: gen, log: zap.NewNop()}
	a.Analyze(context.Background(), nil, "Team A vs Team B @1.85")

	assert.Contains(t, gen.lastPrompt, "Não há imagem")
	assert.Contains(t, gen.lastPrompt, "Team A vs Team B @1.85")
}

func TestDetectImageMime(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	assert.Equal(t, "image/png", detectImageMime(png))

	// bytes irreconhecíveis caem no default
	assert.Equal(t, "image/jpeg", detectImageMime([]byte{0x00, 0x01}))
}
