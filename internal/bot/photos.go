package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// Downloader baixa fotos pela File API do Telegram.
type Downloader struct {
	api    *tgbotapi.BotAPI
	httpc  *http.Client
	tmpDir string
}

func NewDownloader(api *tgbotapi.BotAPI) *Downloader {
	return &Downloader{api: api, httpc: http.DefaultClient, tmpDir: os.TempDir()}
}

// Download resolve o file_id para a URL direta e devolve os bytes da imagem.
// O arquivo passa por um temporário com nome único e é sempre removido na
// saída, com ou sem sucesso.
func (d *Downloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := d.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolver url do arquivo: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("montar request: %w", err)
	}
	resp, err := d.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("baixar arquivo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("baixar arquivo: status %d", resp.StatusCode)
	}

	path := filepath.Join(d.tmpDir, "tgphoto-"+uuid.NewString())
	defer os.Remove(path)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("criar temporário: %w", err)
	}
	_, err = io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("gravar temporário: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler temporário: %w", err)
	}
	return data, nil
}
