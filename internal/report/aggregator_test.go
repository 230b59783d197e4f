package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/texasgambler/bet-monitor/internal/wager"
)

func TestCompute_RegrasDePayout(t *testing.T) {
	ws := []wager.Wager{
		{Units: 2, Odd: 1.5, Result: wager.OutcomeGreen},     // +1.0
		{Units: 2, Odd: 1.5, Result: wager.OutcomeHalfGreen}, // +0.5
		{Units: 2, Odd: 1.5, Result: wager.OutcomeRed},       // -2.0
		{Units: 2, Odd: 1.5, Result: wager.OutcomeHalfRed},   // -1.0
		{Units: 2, Odd: 1.5, Result: wager.OutcomeVoid},      // 0
		{Units: 2, Odd: 1.5},                                 // aberta, 0
	}

	s := Compute(ws)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Greens)
	assert.Equal(t, 2, s.Reds)
	assert.Equal(t, 1, s.Voids)
	assert.Equal(t, 1, s.Open)
	assert.InDelta(t, -1.5, s.NetUnits, 1e-9)
	assert.InDelta(t, 12.0, s.UnitsStaked, 1e-9)
	assert.InDelta(t, 1.5, s.AvgOdd, 1e-9)
}

func TestCompute_Vazio(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.NetUnits)
	assert.Zero(t, s.AvgOdd, "média sem divisão por zero")
}

func TestCompute_OddZeroForaDaMedia(t *testing.T) {
	ws := []wager.Wager{
		{Units: 1, Odd: 2.0, Result: wager.OutcomeGreen},
		{Units: 1, Result: wager.OutcomeRed}, // sem odd registrada
	}
	s := Compute(ws)
	assert.InDelta(t, 2.0, s.AvgOdd, 1e-9)
	assert.InDelta(t, 0.0, s.NetUnits, 1e-9)
}

func TestPeriodBounds_Dia(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // quarta
	from, to := PeriodBounds(PeriodDay, now)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), to)
}

func TestPeriodBounds_SemanaComecaNaSegunda(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) // quarta
	from, to := PeriodBounds(PeriodWeek, now)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), to)

	// domingo pertence à semana que começou na segunda anterior
	sunday := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)
	from, _ = PeriodBounds(PeriodWeek, sunday)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), from)
}

func TestPeriodBounds_Mes(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	from, to := PeriodBounds(PeriodMonth, now)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestFormatStats(t *testing.T) {
	s := Stats{Total: 3, Greens: 2, Reds: 1, NetUnits: 1.25, AvgOdd: 1.87}
	out := FormatStats(PeriodDay, s)
	assert.Contains(t, out, "Total de apostas: 3")
	assert.Contains(t, out, "Saldo: +1,25u")
	assert.Contains(t, out, "Odd média: 1,87")
	assert.NotContains(t, out, "Voids", "seção omitida quando zerada")
}

func TestFormatStats_SemApostas(t *testing.T) {
	out := FormatStats(PeriodWeek, Stats{})
	assert.Contains(t, out, "Nenhuma aposta")
}

func TestFormatOpen(t *testing.T) {
	out := FormatOpen([]wager.Wager{
		{ID: 7, HomeTeam: "Team A", AwayTeam: "Team B", Market: "Match Winner", Odd: 1.85, Units: 2},
	})
	assert.Len(t, out, 1)
	assert.Contains(t, out[0], "#7")
	assert.Contains(t, out[0], "Team A x Team B")
	assert.Contains(t, out[0], "@1,85")
}

func TestFormatOpen_TruncaNomesLongos(t *testing.T) {
	out := FormatOpen([]wager.Wager{
		{ID: 1, Market: "Vencedor do primeiro mapa com handicap de kills"},
	})
	assert.Contains(t, out[0], "…")
	assert.NotContains(t, out[0], "handicap de kills")
}

func TestFormatOpen_QuebraEmBlocos(t *testing.T) {
	var ws []wager.Wager
	for i := 1; i <= 300; i++ {
		ws = append(ws, wager.Wager{ID: int64(i), HomeTeam: "Time da Casa", AwayTeam: "Time de Fora", Market: "Match Winner", Odd: 1.85, Units: 2})
	}
	out := FormatOpen(ws)
	assert.Greater(t, len(out), 1)
	for _, chunk := range out {
		assert.LessOrEqual(t, len(chunk), 4096)
	}
}
