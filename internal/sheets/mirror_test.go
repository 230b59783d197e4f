package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/wager"
)

// fakeRangeAPI guarda as faixas escritas em memória.
type fakeRangeAPI struct {
	cells   map[string][][]interface{} // faixa → valores
	getResp [][]interface{}
	err     error
}

func newFakeRangeAPI() *fakeRangeAPI {
	return &fakeRangeAPI{cells: map[string][][]interface{}{}}
}

func (f *fakeRangeAPI) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	return f.getResp, f.err
}

func (f *fakeRangeAPI) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.cells[rng] = values
	return nil
}

func (f *fakeRangeAPI) Append(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.cells[rng] = append(f.cells[rng], values...)
	return nil
}

type fakeReserver struct{ row int }

func (f *fakeReserver) NextRow(ctx context.Context, sheetID int64) (int, error) {
	f.row++
	return f.row, nil
}

type fakeRowStore struct {
	saved map[int64]int
	err   error
}

func (f *fakeRowStore) SetSheetRow(ctx context.Context, wagerID int64, row int) error {
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[int64]int{}
	}
	f.saved[wagerID] = row
	return nil
}

func newTestMirror(api RangeAPI, reserver rowReserver, rows RowStore) *sheetMirror {
	return &sheetMirror{
		api:   api,
		store: reserver,
		rows:  rows,
		sheet: &Sheet{ID: 1, SpreadsheetID: "sp1", SheetName: "Apostas", CurrentRow: 1},
		log:   zap.NewNop(),
		now:   func() time.Time { return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) },
	}
}

func sampleWager() *wager.Wager {
	return &wager.Wager{
		ID: 7, HomeTeam: "FURIA", AwayTeam: "LOUD", Market: "Match Winner",
		Odd: 1.85, Units: 2, ChatID: "-100", Result: wager.OutcomeGreen,
		CreatedAt: time.Date(2025, 3, 11, 20, 0, 0, 0, time.UTC),
	}
}

func TestCreateLine(t *testing.T) {
	api := newFakeRangeAPI()
	reserver := &fakeReserver{row: 1} // cabeçalho na linha 1
	rows := &fakeRowStore{}
	m := newTestMirror(api, reserver, rows)

	w := sampleWager()
	status, err := m.CreateLine(context.Background(), w, "Canal VIP")
	require.NoError(t, err)
	assert.Equal(t, wager.MirrorSuccess, status)

	assert.Equal(t, 2, w.SheetRow)
	assert.Equal(t, 2, rows.saved[7])

	written := api.cells["Apostas!A2:J2"]
	require.Len(t, written, 1)
	row := written[0]
	assert.Equal(t, "11/03/2025", row[0])
	assert.Equal(t, "7", row[1])
	assert.Equal(t, "Canal VIP", row[2])
	assert.Equal(t, "FURIA", row[3])
	assert.Equal(t, "LOUD", row[4])
	assert.Equal(t, "Match Winner", row[5])
	assert.Equal(t, "2,00", row[6])
	assert.Equal(t, "1,85", row[7])
	assert.Equal(t, "Certo", row[8])
}

func TestUpdateLine_UsaLinhaConhecida(t *testing.T) {
	api := newFakeRangeAPI()
	m := newTestMirror(api, &fakeReserver{}, &fakeRowStore{})

	w := sampleWager()
	w.SheetRow = 5
	w.Result = wager.OutcomeHalfRed

	status, err := m.UpdateLine(context.Background(), w, "")
	require.NoError(t, err)
	assert.Equal(t, wager.MirrorSuccess, status)

	written := api.cells["Apostas!A5:J5"]
	require.Len(t, written, 1)
	assert.Equal(t, "meio errado", written[0][8])
}

func TestUpdateLine_AchaLinhaPelaColunaDeIDs(t *testing.T) {
	api := newFakeRangeAPI()
	api.getResp = [][]interface{}{{"3"}, {"7"}, {"9"}} // B2, B3, B4
	m := newTestMirror(api, &fakeReserver{}, &fakeRowStore{})

	w := sampleWager() // ID 7, SheetRow 0
	_, err := m.UpdateLine(context.Background(), w, "")
	require.NoError(t, err)

	_, ok := api.cells["Apostas!A3:J3"]
	assert.True(t, ok, "id 7 está na segunda linha de dados (linha 3)")
}

func TestUpdateLine_SemLinhaCria(t *testing.T) {
	api := newFakeRangeAPI()
	reserver := &fakeReserver{row: 1}
	m := newTestMirror(api, reserver, &fakeRowStore{})

	w := sampleWager()
	status, err := m.UpdateLine(context.Background(), w, "")
	require.NoError(t, err)
	assert.Equal(t, wager.MirrorSuccess, status)
	assert.Equal(t, 2, w.SheetRow)
}

func TestCreateLine_FalhaDoRowStoreNaoDerruba(t *testing.T) {
	api := newFakeRangeAPI()
	m := newTestMirror(api, &fakeReserver{row: 1}, &fakeRowStore{err: errors.New("pg fora")})

	status, err := m.CreateLine(context.Background(), sampleWager(), "")
	require.NoError(t, err, "linha já foi escrita; persistir o cursor é best effort")
	assert.Equal(t, wager.MirrorSuccess, status)
}

func TestRowValues_CamposVaziosViramCelulasVazias(t *testing.T) {
	w := &wager.Wager{ID: 1, ChatID: "-100"}
	row := rowValues(w, "", time.Now())
	assert.Equal(t, "", row[6], "unidades zero")
	assert.Equal(t, "", row[7], "odd zero")
	assert.Equal(t, "", row[8], "sem resultado")
}

func TestNoopMirror(t *testing.T) {
	var m wager.Mirror = noopMirror{}
	status, err := m.CreateLine(context.Background(), sampleWager(), "")
	require.NoError(t, err)
	assert.Equal(t, wager.MirrorSkipped, status)
}
