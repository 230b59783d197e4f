package sheets

import (
	"context"
	"database/sql"
	"fmt"
)

// Sheet é o registro de vínculo chat → planilha. current_row guarda a última
// linha escrita (1 = só o cabeçalho).
type Sheet struct {
	ID            int64
	ChatID        string
	SpreadsheetID string
	SheetName     string
	CurrentRow    int
	Active        bool
}

// Store persiste os vínculos no Postgres.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindByChat devolve o vínculo ativo do chat, ou nil quando o chat não tem
// planilha configurada.
func (s *Store) FindByChat(ctx context.Context, chatID string) (*Sheet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, chat_id, spreadsheet_id, sheet_name, current_row, active
		  FROM sheets
		 WHERE chat_id = $1 AND active`, chatID)

	var sh Sheet
	err := row.Scan(&sh.ID, &sh.ChatID, &sh.SpreadsheetID, &sh.SheetName, &sh.CurrentRow, &sh.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar planilha do chat: %w", err)
	}
	return &sh, nil
}

// NextRow avança o cursor da planilha e devolve a linha reservada. O UPDATE
// atômico evita duas apostas disputarem a mesma linha.
func (s *Store) NextRow(ctx context.Context, sheetID int64) (int, error) {
	var row int
	err := s.db.QueryRowContext(ctx, `
		UPDATE sheets SET current_row = current_row + 1, updated_at = now()
		 WHERE id = $1
		RETURNING current_row`, sheetID).Scan(&row)
	if err != nil {
		return 0, fmt.Errorf("reservar linha da planilha: %w", err)
	}
	return row, nil
}

// Register cria ou reativa o vínculo de um chat com uma planilha.
func (s *Store) Register(ctx context.Context, chatID, spreadsheetID, sheetName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sheets (chat_id, spreadsheet_id, sheet_name, current_row, active)
		VALUES ($1, $2, $3, 1, true)
		ON CONFLICT (chat_id) DO UPDATE
		   SET spreadsheet_id = EXCLUDED.spreadsheet_id,
		       sheet_name     = EXCLUDED.sheet_name,
		       active         = true,
		       updated_at     = now()`,
		chatID, spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("registrar planilha: %w", err)
	}
	return nil
}
