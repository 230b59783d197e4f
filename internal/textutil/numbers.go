package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// 2u, 1.5u, 2 u / 2 unidades / stake 2, stake: 1,5
	unitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*u\b`),
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*unidades?\b`),
		regexp.MustCompile(`(?i)\bstake\s*[:\-]?\s*(\d+(?:[.,]\d+)?)`),
	}

	// Odd precisa ter um prefixo claro (@, odd, odds, cota, cotação)
	oddPattern = regexp.MustCompile(`(?i)(?:@|odds?\s*[:\-]?\s*|cota(?:[cç][aã]o)?\s*[:\-]?\s*)(\d+(?:[.,]\d+)?)`)
)

// ParseDecimal converte um decimal com vírgula ou ponto. "2,5" e "2.5"
// produzem o mesmo valor.
func ParseDecimal(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractUnits procura o valor de unidades/stake no texto, limitado a (0, 100].
// Devolve também o texto com o trecho casado removido, para que um dígito de
// stake não seja lido depois como odd.
func ExtractUnits(text string) (units float64, rest string, ok bool) {
	for _, pattern := range unitPatterns {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		n, parsed := ParseDecimal(text[loc[2]:loc[3]])
		if !parsed || n <= 0 || n > 100 {
			continue
		}
		return n, text[:loc[0]] + text[loc[1]:], true
	}
	return 0, text, false
}

// ExtractOdd procura uma odd introduzida por um marcador reconhecível.
// Deve ser chamada sobre o texto já sem o trecho de unidades.
func ExtractOdd(text string) (float64, bool) {
	m := oddPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return ParseDecimal(m[1])
}

// ExtractUnitsAndOdd aplica os dois extratores na ordem correta: primeiro as
// unidades (removendo o trecho casado), depois a odd no restante.
func ExtractUnitsAndOdd(text string) (units float64, odd float64, hasUnits bool, hasOdd bool) {
	units, rest, hasUnits := ExtractUnits(text)
	odd, hasOdd = ExtractOdd(rest)
	return units, odd, hasUnits, hasOdd
}
