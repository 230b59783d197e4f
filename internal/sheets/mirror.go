package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/report"
	"github.com/texasgambler/bet-monitor/internal/wager"
)

// RowStore persiste a linha de planilha atribuída a uma aposta.
type RowStore interface {
	SetSheetRow(ctx context.Context, wagerID int64, row int) error
}

// rowReserver é o pedaço do Store que o espelho usa para reservar linhas.
type rowReserver interface {
	NextRow(ctx context.Context, sheetID int64) (int, error)
}

// resultLabels traduz o desfecho para o vocabulário da planilha.
var resultLabels = map[wager.Outcome]string{
	wager.OutcomeGreen:     "Certo",
	wager.OutcomeRed:       "Errado",
	wager.OutcomeHalfGreen: "meio certo",
	wager.OutcomeHalfRed:   "meio errado",
	wager.OutcomeVoid:      "void",
}

// sheetMirror escreve/atualiza a linha de uma aposta na planilha do chat.
// Colunas: A data | B id | C origem | D casa | E fora | F mercado |
// G unidades | H odd | I resultado | J atualizado em.
type sheetMirror struct {
	api   RangeAPI
	store rowReserver
	rows  RowStore
	sheet *Sheet
	log   *zap.Logger
	now   func() time.Time
}

func (m *sheetMirror) CreateLine(ctx context.Context, w *wager.Wager, sourceTitle string) (wager.MirrorStatus, error) {
	row, err := m.store.NextRow(ctx, m.sheet.ID)
	if err != nil {
		return "", err
	}
	if err := m.writeRow(ctx, row, w, sourceTitle); err != nil {
		return "", err
	}

	w.SheetRow = row
	if err := m.rows.SetSheetRow(ctx, w.ID, row); err != nil {
		// linha escrita mas cursor não persistido: o UpdateLine ainda acha
		// a linha pela varredura da coluna B
		m.log.Warn("linha espelhada mas sheet_row não persistido",
			zap.Int64("wager_id", w.ID), zap.Error(err))
	}
	return wager.MirrorSuccess, nil
}

func (m *sheetMirror) UpdateLine(ctx context.Context, w *wager.Wager, sourceTitle string) (wager.MirrorStatus, error) {
	row := w.SheetRow
	if row == 0 {
		var err error
		row, err = m.findRowByID(ctx, w.ID)
		if err != nil {
			return "", err
		}
	}
	if row == 0 {
		// aposta nunca foi espelhada: cria em vez de atualizar
		return m.CreateLine(ctx, w, sourceTitle)
	}
	if err := m.writeRow(ctx, row, w, sourceTitle); err != nil {
		return "", err
	}
	return wager.MirrorSuccess, nil
}

func (m *sheetMirror) writeRow(ctx context.Context, row int, w *wager.Wager, sourceTitle string) error {
	rng := fmt.Sprintf("%s!A%d:J%d", m.sheet.SheetName, row, row)
	return m.api.Update(ctx, m.sheet.SpreadsheetID, rng, [][]interface{}{rowValues(w, sourceTitle, m.now())})
}

// findRowByID varre a coluna de ids atrás da linha da aposta. 0 = não achou.
func (m *sheetMirror) findRowByID(ctx context.Context, wagerID int64) (int, error) {
	rng := fmt.Sprintf("%s!B2:B", m.sheet.SheetName)
	values, err := m.api.Get(ctx, m.sheet.SpreadsheetID, rng)
	if err != nil {
		return 0, err
	}
	want := strconv.FormatInt(wagerID, 10)
	for i, cells := range values {
		if len(cells) > 0 && fmt.Sprint(cells[0]) == want {
			return i + 2, nil
		}
	}
	return 0, nil
}

func rowValues(w *wager.Wager, sourceTitle string, now time.Time) []interface{} {
	return []interface{}{
		w.CreatedAt.Format("02/01/2006"),
		strconv.FormatInt(w.ID, 10),
		sourceTitle,
		w.HomeTeam,
		w.AwayTeam,
		w.Market,
		cell(w.Units),
		cell(w.Odd),
		resultLabels[w.Result],
		now.Format("02/01/2006 15:04"),
	}
}

// cell formata números com vírgula decimal; zero vira célula vazia.
func cell(v float64) string {
	if v == 0 {
		return ""
	}
	return report.Decimal(v)
}
