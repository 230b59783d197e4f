// Package extraction transforma uma imagem de print (ou texto livre) num
// rascunho estruturado de aposta. Há duas variantes intercambiáveis: a
// determinística sobre OCR local e a assistida por LLM (Gemini).
package extraction

import "context"

// Draft é o palpite estruturado produzido antes da resolução de mercado e da
// persistência. Campos zero significam "não encontrado".
type Draft struct {
	HomeTeam string
	AwayTeam string
	Market   string
	Odd      float64
	Units    float64
	Sport    string
	Notes    string
}

// Empty devolve true quando nenhum campo de dado foi extraído.
func (d Draft) Empty() bool {
	return d.HomeTeam == "" && d.AwayTeam == "" && d.Market == "" &&
		d.Odd == 0 && d.Units == 0 && d.Sport == ""
}

// Analyzer é o contrato das variantes de extração. image pode ser nil quando
// a mensagem não tem foto (caminho texto-puro). Falha de colaborador externo
// nunca vira erro: a variante degrada para um Draft vazio com uma nota
// diagnóstica legível.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, textContext string) Draft
}
