// Package classifier decide se uma mensagem recebida descreve uma aposta.
// É o portão barato que roda antes de qualquer chamada de OCR/LLM, para
// limitar gasto com APIs externas e ruído.
package classifier

import "regexp"

// Result é efêmero, nunca persistido.
type Result struct {
	IsBet      bool
	Confidence float64  // score/8 com clamp em [0,1]; leitura indicativa, não probabilidade calibrada
	Reasons    []string // tags dos sinais que dispararam
}

var (
	unitsRe    = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*u\b`)
	stakeRe    = regexp.MustCompile(`(?i)stake\s*[:\-]?\s*\d+`)
	oddAtRe    = regexp.MustCompile(`(?i)@\s*\d+(?:[.,]\d+)?`)
	oddWordRe  = regexp.MustCompile(`(?i)odds?\s*[:\-]?\s*\d+(?:[.,]\d+)?`)
	oddCotaRe  = regexp.MustCompile(`(?i)cota(?:[cç][aã]o)?\s*[:\-]?\s*\d+(?:[.,]\d+)?`)
	marketRe   = regexp.MustCompile(`(?i)\b(moneyline|ml|handicap|over|under|total|maps?|kills?|gols?|escanteios?|first\s*blood)\b`)
	betWordRe  = regexp.MustCompile(`(?i)\b(aposta|bet|pick|tip)\b`)
	teamSepRe  = regexp.MustCompile(`(?i)\bvs\b|\bx\b|\s-\s`)
	promoRe    = regexp.MustCompile(`(?i)\b(bonus|cadastro|cupom|sorteio|promo)\b`)
)

// Classify pontua os sinais heurísticos da mensagem. Função pura e
// determinística de (temFoto, texto).
//
// Pesos: +2 foto, +2 unidades, +2 odd, +1 mercado, +1 palavra de aposta,
// +1 separador de times; -2 palavra promocional (puxa casos limítrofes para
// baixo do corte). Corte: 2 com foto, 3 sem. Foto mais um sinal fraco passa;
// texto puro precisa de mais corroboração.
func Classify(hasPhoto bool, text string) Result {
	score := 0
	var reasons []string

	if hasPhoto {
		score += 2
		reasons = append(reasons, "foto")
	}

	if unitsRe.MatchString(text) || stakeRe.MatchString(text) {
		score += 2
		reasons = append(reasons, "unidades")
	}

	if oddAtRe.MatchString(text) || oddWordRe.MatchString(text) || oddCotaRe.MatchString(text) {
		score += 2
		reasons = append(reasons, "odd")
	}

	if marketRe.MatchString(text) {
		score++
		reasons = append(reasons, "mercado")
	}

	if betWordRe.MatchString(text) {
		score++
		reasons = append(reasons, "aposta")
	}

	if teamSepRe.MatchString(text) {
		score++
		reasons = append(reasons, "times")
	}

	if promoRe.MatchString(text) {
		score -= 2
		reasons = append(reasons, "promocional")
	}

	threshold := 3
	if hasPhoto {
		threshold = 2
	}

	isBet := score >= threshold
	confidence := clamp(float64(score)/8, 0, 1)

	if !isBet && len(reasons) == 0 {
		reasons = append(reasons, "sem_indicadores")
	}

	return Result{IsBet: isBet, Confidence: confidence, Reasons: reasons}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
