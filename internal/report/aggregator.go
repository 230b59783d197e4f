package report

import (
	"context"
	"time"

	"github.com/texasgambler/bet-monitor/internal/wager"
)

// Stats agrega o desempenho de um conjunto de apostas.
type Stats struct {
	Total       int
	Greens      int // inclui meio green
	Reds        int // inclui meio red
	Voids       int
	Open        int // sem resultado registrado
	UnitsStaked float64
	NetUnits    float64
	AvgOdd      float64
}

// Period é a janela de agregação dos comandos de relatório.
type Period string

const (
	PeriodDay   Period = "dia"
	PeriodWeek  Period = "semana"
	PeriodMonth Period = "mes"
)

// PeriodBounds devolve [from, to) da janela em horário local: dia corrente,
// semana começando na segunda, ou mês corrente.
func PeriodBounds(p Period, now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	switch p {
	case PeriodWeek:
		weekday := int(now.Weekday())
		if weekday == 0 { // domingo fecha a semana, não abre
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
			AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7)
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	}
}

// Compute agrega as apostas. Regra de payout por unidade apostada:
// green = units*(odd-1), red = -units, meios valem metade, void/aberta = 0.
func Compute(ws []wager.Wager) Stats {
	var s Stats
	var oddSum float64
	var oddCount int

	for _, w := range ws {
		s.Total++
		s.UnitsStaked += w.Units
		if w.Odd > 0 {
			oddSum += w.Odd
			oddCount++
		}

		switch w.Result {
		case wager.OutcomeGreen:
			s.Greens++
			s.NetUnits += w.Units * (w.Odd - 1)
		case wager.OutcomeHalfGreen:
			s.Greens++
			s.NetUnits += w.Units * (w.Odd - 1) / 2
		case wager.OutcomeRed:
			s.Reds++
			s.NetUnits -= w.Units
		case wager.OutcomeHalfRed:
			s.Reds++
			s.NetUnits -= w.Units / 2
		case wager.OutcomeVoid:
			s.Voids++
		default:
			s.Open++
		}
	}
	if oddCount > 0 {
		s.AvgOdd = oddSum / float64(oddCount)
	}
	return s
}

// Aggregator busca e agrega apostas de um chat por período.
type Aggregator struct {
	repo wager.Repo
}

func NewAggregator(repo wager.Repo) *Aggregator {
	return &Aggregator{repo: repo}
}

func (a *Aggregator) StatsFor(ctx context.Context, chatID string, p Period, now time.Time) (Stats, error) {
	from, to := PeriodBounds(p, now)
	ws, err := a.repo.ListBetween(ctx, chatID, from, to)
	if err != nil {
		return Stats{}, err
	}
	return Compute(ws), nil
}

func (a *Aggregator) OpenWagers(ctx context.Context, chatID string) ([]wager.Wager, error) {
	return a.repo.ListOpen(ctx, chatID)
}
