package sheets

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/wager"
)

// Registry entrega o espelho de planilha de cada chat. Chats sem vínculo
// ativo recebem um espelho no-op, então o pipeline nunca precisa checar se
// o chat tem planilha.
type Registry struct {
	api   RangeAPI
	store *Store
	rows  RowStore
	log   *zap.Logger
}

func NewRegistry(api RangeAPI, store *Store, rows RowStore, log *zap.Logger) *Registry {
	return &Registry{api: api, store: store, rows: rows, log: log}
}

func (r *Registry) For(chatID string) wager.Mirror {
	if r == nil || r.api == nil {
		return noopMirror{}
	}
	return &lazyMirror{registry: r, chatID: chatID}
}

// lazyMirror resolve o vínculo chat → planilha só na hora da escrita, para
// pegar vínculos criados depois do boot do bot.
type lazyMirror struct {
	registry *Registry
	chatID   string
}

func (m *lazyMirror) CreateLine(ctx context.Context, w *wager.Wager, sourceTitle string) (wager.MirrorStatus, error) {
	inner, err := m.resolve(ctx)
	if err != nil {
		return "", err
	}
	return inner.CreateLine(ctx, w, sourceTitle)
}

func (m *lazyMirror) UpdateLine(ctx context.Context, w *wager.Wager, sourceTitle string) (wager.MirrorStatus, error) {
	inner, err := m.resolve(ctx)
	if err != nil {
		return "", err
	}
	return inner.UpdateLine(ctx, w, sourceTitle)
}

func (m *lazyMirror) resolve(ctx context.Context) (wager.Mirror, error) {
	r := m.registry
	sheet, err := r.store.FindByChat(ctx, m.chatID)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		r.log.Debug("chat sem planilha vinculada", zap.String("chat", m.chatID))
		return noopMirror{}, nil
	}
	return &sheetMirror{
		api:   r.api,
		store: r.store,
		rows:  r.rows,
		sheet: sheet,
		log:   r.log,
		now:   time.Now,
	}, nil
}

// noopMirror pula o espelhamento sem erro.
type noopMirror struct{}

func (noopMirror) CreateLine(context.Context, *wager.Wager, string) (wager.MirrorStatus, error) {
	return wager.MirrorSkipped, nil
}

func (noopMirror) UpdateLine(context.Context, *wager.Wager, string) (wager.MirrorStatus, error) {
	return wager.MirrorSkipped, nil
}
