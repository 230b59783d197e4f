package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize devolve a forma canônica usada em comparações: minúsculas, sem
// acentos, espaços internos colapsados e sem espaços nas pontas. Entrada
// vazia (ou só espaços) devolve "".
func Normalize(value string) string {
	if value == "" {
		return ""
	}

	decomposed := norm.NFD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeKey é a variante de chave de dicionário: igual a Normalize, mas com
// espaços trocados por underscore. É a única função de derivação de chave dos
// sinônimos de mercado: duas grafias são "o mesmo mercado" sse as chaves
// normalizadas forem idênticas byte a byte.
func NormalizeKey(value string) string {
	normalized := Normalize(value)
	if normalized == "" {
		return ""
	}
	return strings.ReplaceAll(normalized, " ", "_")
}
