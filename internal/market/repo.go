package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repo é o contrato de persistência usado pelo resolvedor (Postgres em
// produção, fake nos testes).
type Repo interface {
	FindByNormalizedSynonym(ctx context.Context, normalized string) (*Market, *Synonym, error)
	FindByName(ctx context.Context, name string) (*Market, error)
	List(ctx context.Context) ([]Market, error)
	CreateMarket(ctx context.Context, name, normalizedName, category string) (*Market, error)
	CreateSynonym(ctx context.Context, marketID int64, value, normalizedValue string) (*Synonym, error)
}

// Postgres implementa Repo sobre as tabelas markets e market_synonyms.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// FindByNormalizedSynonym é o fast path do resolvedor: lookup do sinônimo
// pelo valor normalizado, já com o mercado dono. (nil, nil, nil) quando não há.
func (p *Postgres) FindByNormalizedSynonym(ctx context.Context, normalized string) (*Market, *Synonym, error) {
	var m Market
	var s Synonym
	var category sql.NullString
	err := p.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.normalized_name, m.category, m.created_at, m.updated_at,
		       s.id, s.market_id, s.value, s.normalized_value, s.created_at
		FROM market_synonyms s
		JOIN markets m ON m.id = s.market_id
		WHERE s.normalized_value = $1
		LIMIT 1`, normalized,
	).Scan(&m.ID, &m.Name, &m.NormalizedName, &category, &m.CreatedAt, &m.UpdatedAt,
		&s.ID, &s.MarketID, &s.Value, &s.NormalizedValue, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find synonym: %w", err)
	}
	m.Category = category.String
	return &m, &s, nil
}

func (p *Postgres) FindByName(ctx context.Context, name string) (*Market, error) {
	var m Market
	var category sql.NullString
	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, normalized_name, category, created_at, updated_at
		FROM markets WHERE name = $1 LIMIT 1`, name,
	).Scan(&m.ID, &m.Name, &m.NormalizedName, &category, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find market by name: %w", err)
	}
	m.Category = category.String
	return &m, nil
}

func (p *Postgres) List(ctx context.Context) ([]Market, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, normalized_name, category, created_at, updated_at
		FROM markets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()

	var out []Market
	for rows.Next() {
		var m Market
		var category sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.NormalizedName, &category, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		m.Category = category.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateMarket(ctx context.Context, name, normalizedName, category string) (*Market, error) {
	var m Market
	var cat sql.NullString
	if category != "" {
		cat = sql.NullString{String: category, Valid: true}
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO markets (name, normalized_name, category, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (normalized_name) DO UPDATE SET updated_at = NOW()
		RETURNING id, name, normalized_name, category, created_at, updated_at`,
		name, normalizedName, cat,
	).Scan(&m.ID, &m.Name, &m.NormalizedName, &cat, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create market: %w", err)
	}
	m.Category = cat.String
	return &m, nil
}

// CreateSynonym insere o sinônimo normalizado; se já existe (corrida entre
// mensagens concorrentes), devolve o existente.
func (p *Postgres) CreateSynonym(ctx context.Context, marketID int64, value, normalizedValue string) (*Synonym, error) {
	var s Synonym
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO market_synonyms (market_id, value, normalized_value, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (normalized_value) DO UPDATE SET normalized_value = EXCLUDED.normalized_value
		RETURNING id, market_id, value, normalized_value, created_at`,
		marketID, value, normalizedValue,
	).Scan(&s.ID, &s.MarketID, &s.Value, &s.NormalizedValue, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create synonym: %w", err)
	}
	return &s, nil
}
