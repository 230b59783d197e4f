package extraction

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
	"github.com/texasgambler/bet-monitor/internal/textutil"
)

// Line é uma linha reconhecida pelo OCR com a confiança reportada pelo motor.
type Line struct {
	Text       string
	Confidence float64
}

// Engine abstrai o motor de OCR (tesseract em produção, fake nos testes).
type Engine interface {
	Recognize(ctx context.Context, image []byte) ([]Line, error)
}

// OCRAnalyzer é a variante determinística (local) da extração: heurísticas
// sobre as linhas do OCR, sem chamada de rede.
type OCRAnalyzer struct {
	engine Engine
	log    *zap.Logger
}

func NewOCRAnalyzer(engine Engine, log *zap.Logger) *OCRAnalyzer {
	return &OCRAnalyzer{engine: engine, log: log}
}

var (
	// primeiro decimal com exatamente 2 casas, dentro de [1, 500]
	twoDecimalRe = regexp.MustCompile(`\d+(?:[.,]\d{2})`)

	// linha candidata a time: letras/dígitos/.,'-/espaço, sem prefixo de moeda ou dígito
	candidateLineRe = regexp.MustCompile(`^[A-Za-z0-9 .,'-]+$`)

	// separador de par: vs, v, -, –, @
	pairSepRe = regexp.MustCompile(`(?i)(?:\s+vs\.?\s+|\s+v\s+|[-–@])`)

	marketKeywordRe = regexp.MustCompile(`(?i)vencer|win|winner|moneyline|ml`)
)

func (a *OCRAnalyzer) Analyze(ctx context.Context, image []byte, textContext string) Draft {
	if len(image) == 0 {
		return Draft{Notes: "Variante OCR recebeu mensagem sem imagem."}
	}

	lines, err := a.engine.Recognize(ctx, image)
	if err != nil {
		a.log.Warn("ocr: falha ao reconhecer imagem", zap.Error(err))
		metrics.ExtractionFailures.WithLabelValues("ocr").Inc()
		return Draft{Notes: "Falha ao rodar OCR na imagem: " + err.Error()}
	}
	if len(lines) == 0 {
		return Draft{Notes: "OCR não encontrou texto na imagem."}
	}

	return parseLines(lines)
}

func parseLines(lines []Line) Draft {
	var all []string
	for _, l := range lines {
		all = append(all, l.Text)
	}
	text := strings.Join(all, "\n")

	odd := findOddInRange(text)

	var candidates []string
	for _, l := range lines {
		t := strings.TrimSpace(l.Text)
		if !candidateLineRe.MatchString(t) {
			continue
		}
		lower := strings.ToLower(t)
		if strings.HasPrefix(lower, "r$") || (len(t) > 0 && t[0] >= '0' && t[0] <= '9') {
			continue
		}
		candidates = append(candidates, t)
	}

	var home, away string
	if pair := firstMatching(candidates, pairSepRe); pair != "" {
		parts := splitPair(pair)
		if len(parts) > 0 {
			home = parts[0]
		}
		if len(parts) > 1 {
			away = parts[1]
		}
	} else {
		if len(candidates) > 0 {
			home = candidates[0]
		}
		if len(candidates) > 1 {
			away = candidates[1]
		}
	}

	market := firstMatching(candidates, marketKeywordRe)
	if market == "" && len(candidates) > 1 {
		market = candidates[1]
	}

	return Draft{
		HomeTeam: home,
		AwayTeam: away,
		Market:   market,
		Odd:      odd,
		Notes:    "Resultado baseado em OCR local.",
	}
}

// findOddInRange devolve o primeiro número com 2 casas decimais em [1, 500]
// encontrado em qualquer lugar do texto concatenado, ou 0.
func findOddInRange(text string) float64 {
	for _, m := range twoDecimalRe.FindAllString(text, -1) {
		n, ok := textutil.ParseDecimal(m)
		if ok && n >= 1 && n <= 500 {
			return n
		}
	}
	return 0
}

func firstMatching(lines []string, re *regexp.Regexp) string {
	for _, l := range lines {
		if re.MatchString(l) {
			return l
		}
	}
	return ""
}

func splitPair(line string) []string {
	var parts []string
	for _, p := range pairSepRe.Split(line, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
