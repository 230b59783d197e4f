package metrics

import "github.com/prometheus/client_golang/prometheus"

// Contadores do pipeline de ingestão de apostas.
var (
	MessagesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bot_messages_classified_total", Help: "mensagens classificadas, por decisão"},
		[]string{"decision"}, // is_bet | not_bet
	)
	WagersRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bot_wagers_recorded_total", Help: "apostas persistidas"},
	)
	WagersPatched = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bot_wagers_patched_total", Help: "apostas atualizadas via resposta/edição"},
	)
	ExtractionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bot_extraction_failures_total", Help: "extrações degradadas, por variante"},
		[]string{"variant"}, // ocr | gemini
	)
	GeminiRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bot_gemini_retries_total", Help: "novas tentativas contra a API Gemini"},
	)
	MirrorFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bot_sheet_mirror_failures_total", Help: "falhas ao espelhar na planilha"},
	)
)

// MustRegisterPipeline registra os contadores do pipeline no registry default.
// Chamado uma vez no main de cada serviço que os usa.
func MustRegisterPipeline() {
	prometheus.MustRegister(
		MessagesClassified,
		WagersRecorded,
		WagersPatched,
		ExtractionFailures,
		GeminiRetries,
		MirrorFailures,
	)
}
