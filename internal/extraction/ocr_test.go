package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEngine struct {
	lines []Line
	err   error
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) ([]Line, error) {
	return f.lines, f.err
}

func TestOCRAnalyzer_SlipTipico(t *testing.T) {
	engine := &fakeEngine{lines: []Line{
		{Text: "Team Alpha vs Team Beta", Confidence: 0.91},
		{Text: "Vencedor da Partida", Confidence: 0.88},
		{Text: "1.85", Confidence: 0.95},
		{Text: "R$ 50,00", Confidence: 0.90},
	}}

	d := NewOCRAnalyzer(engine, zap.NewNop()).Analyze(context.Background(), []byte{1}, "")
	assert.Equal(t, "Team Alpha", d.HomeTeam)
	assert.Equal(t, "Team Beta", d.AwayTeam)
	assert.Equal(t, 1.85, d.Odd)
}

func TestOCRAnalyzer_MercadoPorPalavraChave(t *testing.T) {
	engine := &fakeEngine{lines: []Line{
		{Text: "FURIA - LOUD"},
		{Text: "Winner Map 1"},
		{Text: "2.10"},
	}}

	d := NewOCRAnalyzer(engine, zap.NewNop()).Analyze(context.Background(), []byte{1}, "")
	assert.Equal(t, "FURIA", d.HomeTeam)
	assert.Equal(t, "LOUD", d.AwayTeam)
	assert.Equal(t, "Winner Map 1", d.Market)
	assert.Equal(t, 2.10, d.Odd)
}

func TestOCRAnalyzer_OddForaDaFaixaIgnorada(t *testing.T) {
	engine := &fakeEngine{lines: []Line{
		{Text: "Team A vs Team B"},
		{Text: "0.50"}, // abaixo de 1
		{Text: "1.92"}, // primeira válida
	}}

	d := NewOCRAnalyzer(engine, zap.NewNop()).Analyze(context.Background(), []byte{1}, "")
	assert.Equal(t, 1.92, d.Odd)
}

func TestOCRAnalyzer_FalhaDoMotorViraNota(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract indisponível")}

	d := NewOCRAnalyzer(engine, zap.NewNop()).Analyze(context.Background(), []byte{1}, "")
	assert.True(t, d.Empty())
	assert.Contains(t, d.Notes, "tesseract indisponível")
}

func TestOCRAnalyzer_SemImagem(t *testing.T) {
	d := NewOCRAnalyzer(&fakeEngine{}, zap.NewNop()).Analyze(context.Background(), nil, "texto")
	assert.True(t, d.Empty())
	assert.NotEmpty(t, d.Notes)
}

func TestOCRAnalyzer_SemTextoReconhecido(t *testing.T) {
	d := NewOCRAnalyzer(&fakeEngine{}, zap.NewNop()).Analyze(context.Background(), []byte{1}, "")
	assert.True(t, d.Empty())
	assert.Contains(t, d.Notes, "não encontrou texto")
}
