package wager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repo é o contrato de persistência de apostas (Postgres em produção, fake
// nos testes).
type Repo interface {
	Create(ctx context.Context, w *Wager) error
	FindByMessage(ctx context.Context, chatID, messageID string) (*Wager, error)
	Update(ctx context.Context, w *Wager) error
	ListBetween(ctx context.Context, chatID string, from, to time.Time) ([]Wager, error)
	ListOpen(ctx context.Context, chatID string) ([]Wager, error)
}

// Postgres implementa Repo sobre a tabela wagers (join com markets para o
// nome de exibição).
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const selectColumns = `
	w.id, w.home_team, w.away_team, w.market_id, COALESCE(m.name, w.market_label, ''),
	w.odd, w.units, w.chat_id, w.message_id, w.result, w.sheet_row, w.created_at, w.updated_at`

func (p *Postgres) Create(ctx context.Context, w *Wager) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO wagers (home_team, away_team, market_id, market_label, odd, units,
		                    chat_id, message_id, result, sheet_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		nullString(w.HomeTeam), nullString(w.AwayTeam), nullInt(w.MarketID), nullString(w.Market),
		nullFloat(w.Odd), nullFloat(w.Units), w.ChatID, nullString(w.MessageID),
		nullString(string(w.Result)), nullIntSmall(w.SheetRow),
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create wager: %w", err)
	}
	return nil
}

// FindByMessage devolve a primeira aposta com aquele par (chat, mensagem).
// Não há constraint de unicidade: o primeiro match vence.
func (p *Postgres) FindByMessage(ctx context.Context, chatID, messageID string) (*Wager, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM wagers w
		LEFT JOIN markets m ON m.id = w.market_id
		WHERE w.chat_id = $1 AND w.message_id = $2
		ORDER BY w.id
		LIMIT 1`, chatID, messageID)

	w, err := scanWager(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find wager by message: %w", err)
	}
	return w, nil
}

func (p *Postgres) Update(ctx context.Context, w *Wager) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE wagers
		SET home_team = $1, away_team = $2, market_id = $3, market_label = $4,
		    odd = $5, units = $6, result = $7, sheet_row = $8, updated_at = NOW()
		WHERE id = $9`,
		nullString(w.HomeTeam), nullString(w.AwayTeam), nullInt(w.MarketID), nullString(w.Market),
		nullFloat(w.Odd), nullFloat(w.Units), nullString(string(w.Result)), nullIntSmall(w.SheetRow),
		w.ID)
	if err != nil {
		return fmt.Errorf("update wager: %w", err)
	}
	return nil
}

// SetSheetRow grava a linha de planilha atribuída à aposta no espelhamento.
func (p *Postgres) SetSheetRow(ctx context.Context, wagerID int64, row int) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE wagers SET sheet_row = $1, updated_at = NOW() WHERE id = $2`,
		nullIntSmall(row), wagerID)
	if err != nil {
		return fmt.Errorf("set sheet row: %w", err)
	}
	return nil
}

func (p *Postgres) ListBetween(ctx context.Context, chatID string, from, to time.Time) ([]Wager, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM wagers w
		LEFT JOIN markets m ON m.id = w.market_id
		WHERE w.chat_id = $1 AND w.created_at >= $2 AND w.created_at < $3
		ORDER BY w.created_at`, chatID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list wagers: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func (p *Postgres) ListOpen(ctx context.Context, chatID string) ([]Wager, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM wagers w
		LEFT JOIN markets m ON m.id = w.market_id
		WHERE w.chat_id = $1 AND w.result IS NULL
		ORDER BY w.created_at`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list open wagers: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

type rowScanner interface{ Scan(dest ...any) error }

func scanWager(r rowScanner) (*Wager, error) {
	var w Wager
	var home, away, msgID, result sql.NullString
	var marketID sql.NullInt64
	var odd, units sql.NullFloat64
	var sheetRow sql.NullInt64

	err := r.Scan(&w.ID, &home, &away, &marketID, &w.Market,
		&odd, &units, &w.ChatID, &msgID, &result, &sheetRow, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	w.HomeTeam = home.String
	w.AwayTeam = away.String
	w.MarketID = marketID.Int64
	w.Odd = odd.Float64
	w.Units = units.Float64
	w.MessageID = msgID.String
	w.Result = Outcome(result.String)
	w.SheetRow = int(sheetRow.Int64)
	return &w, nil
}

func collect(rows *sql.Rows) ([]Wager, error) {
	var out []Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wager: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullInt(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}

func nullIntSmall(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}
