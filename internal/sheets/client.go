// Package sheets espelha apostas em planilhas Google Sheets, uma planilha
// por chat monitorado. O espelhamento é sempre best effort: falha aqui não
// desfaz nada no Postgres.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// RangeAPI é a fatia da API de planilhas que o espelho usa. Interface para
// os testes trocarem a implementação real por um fake em memória.
type RangeAPI interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	Append(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
}

// Client encapsula o serviço oficial do Sheets.
type Client struct {
	svc *sheets.Service
}

// NewClient autentica com a service account do arquivo de credenciais.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("criar serviço do sheets: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ler faixa %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	// USER_ENTERED deixa a planilha interpretar números e datas
	_, err := c.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("escrever faixa %s: %w", rng, err)
	}
	return nil
}

func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	_, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("anexar na faixa %s: %w", rng, err)
	}
	return nil
}

// Clear apaga os valores de uma faixa. Usado na manutenção manual de
// planilhas recém-vinculadas; o pipeline nunca apaga linha de aposta.
func (c *Client) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := c.svc.Spreadsheets.Values.
		Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("limpar faixa %s: %w", rng, err)
	}
	return nil
}
