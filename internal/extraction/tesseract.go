package extraction

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implementa Engine em cima do tesseract via gosseract.
// Cada chamada usa um client próprio: o client do gosseract não é seguro para
// uso concorrente e o bot processa mensagens em goroutines separadas.
type TesseractEngine struct {
	Language string // default "eng"
}

func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{Language: "eng"}
}

func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) ([]Line, error) {
	client := gosseract.NewClient()
	defer client.Close()

	lang := e.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return nil, err
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}

	var lines []Line
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, Confidence: b.Confidence})
	}
	return lines, nil
}
