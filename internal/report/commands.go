package report

import (
	"fmt"
	"strings"

	"github.com/texasgambler/bet-monitor/internal/wager"
)

// limite do Telegram é 4096; margem para o cabeçalho do bloco.
const chunkLimit = 3800

const maxLabelLen = 18

// HelpText é a resposta do /ajuda.
const HelpText = `🤖 Comandos disponíveis:

/dia - relatório das apostas de hoje
/semana - relatório da semana (a partir de segunda)
/mes - relatório do mês corrente
/abertas - apostas ainda sem resultado
/ajuda - esta mensagem

Responda uma aposta com 🟢, 🟥, 🔁, "meio green" ou "meio red" para registrar o resultado.`

var periodTitles = map[Period]string{
	PeriodDay:   "do dia",
	PeriodWeek:  "da semana",
	PeriodMonth: "do mês",
}

// FormatStats monta a resposta dos comandos /dia, /semana e /mes.
func FormatStats(p Period, s Stats) string {
	if s.Total == 0 {
		return fmt.Sprintf("📊 Nenhuma aposta registrada no período %s.", periodTitles[p])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Relatório %s\n\n", periodTitles[p])
	fmt.Fprintf(&b, "Total de apostas: %d\n", s.Total)
	fmt.Fprintf(&b, "✅ Greens: %d\n", s.Greens)
	fmt.Fprintf(&b, "🟥 Reds: %d\n", s.Reds)
	if s.Voids > 0 {
		fmt.Fprintf(&b, "🔁 Voids: %d\n", s.Voids)
	}
	if s.Open > 0 {
		fmt.Fprintf(&b, "⏳ Em aberto: %d\n", s.Open)
	}
	if s.UnitsStaked > 0 {
		fmt.Fprintf(&b, "🎯 Unidades apostadas: %s\n", Decimal(s.UnitsStaked))
	}
	fmt.Fprintf(&b, "💰 Saldo: %su\n", signedDecimal(s.NetUnits))
	if s.AvgOdd > 0 {
		fmt.Fprintf(&b, "📈 Odd média: %s", Decimal(s.AvgOdd))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOpen lista as apostas em aberto, quebrando em blocos dentro do
// limite de mensagem do Telegram.
func FormatOpen(ws []wager.Wager) []string {
	if len(ws) == 0 {
		return []string{"✅ Nenhuma aposta em aberto."}
	}

	var chunks []string
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⏳ Apostas em aberto (%d):\n", len(ws)))

	for _, w := range ws {
		line := openLine(w)
		if b.Len()+len(line) > chunkLimit {
			chunks = append(chunks, strings.TrimRight(b.String(), "\n"))
			b.Reset()
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(b.String(), "\n"))
	}
	return chunks
}

func openLine(w wager.Wager) string {
	var parts []string
	if w.HomeTeam != "" && w.AwayTeam != "" {
		parts = append(parts, truncate(w.HomeTeam)+" x "+truncate(w.AwayTeam))
	}
	if w.Market != "" {
		parts = append(parts, truncate(w.Market))
	}
	if w.Odd > 0 {
		parts = append(parts, "@"+Decimal(w.Odd))
	}
	if w.Units > 0 {
		parts = append(parts, Decimal(w.Units)+"u")
	}
	if len(parts) == 0 {
		parts = append(parts, "(sem detalhes)")
	}
	return fmt.Sprintf("• #%d %s\n", w.ID, strings.Join(parts, " | "))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelLen {
		return s
	}
	return string(r[:maxLabelLen-1]) + "…"
}

// Decimal formata com duas casas e vírgula decimal (pt-BR).
func Decimal(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}

func signedDecimal(v float64) string {
	if v > 0 {
		return "+" + Decimal(v)
	}
	return Decimal(v)
}
