package events

// WagerRecorded é publicado quando uma aposta é persistida ou atualizada.
// O sheet-mirror-worker consome este evento para reespelhar a linha na planilha.
type WagerRecorded struct {
	EventID   string  `json:"event_id"`
	WagerID   int64   `json:"wager_id"`
	ChatID    string  `json:"chat_id"`
	MessageID string  `json:"message_id"`
	HomeTeam  string  `json:"home_team,omitempty"`
	AwayTeam  string  `json:"away_team,omitempty"`
	Market    string  `json:"market,omitempty"`
	Odd       float64 `json:"odd,omitempty"`
	Units     float64 `json:"units,omitempty"`
	Result    string  `json:"result,omitempty"`
	Patched   bool    `json:"patched"` // true quando veio do caminho de edição/resposta
	TsUnixMs  int64   `json:"ts_unix_ms"`
}
