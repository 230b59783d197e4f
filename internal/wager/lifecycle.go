package wager

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/bot"
	"github.com/texasgambler/bet-monitor/internal/classifier"
	"github.com/texasgambler/bet-monitor/internal/extraction"
	"github.com/texasgambler/bet-monitor/internal/market"
	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
	"github.com/texasgambler/bet-monitor/internal/textutil"
	"github.com/texasgambler/bet-monitor/pkg/contracts/events"
)

// MirrorStatus é o desfecho de uma escrita na planilha.
type MirrorStatus string

const (
	MirrorSuccess MirrorStatus = "success"
	MirrorSkipped MirrorStatus = "skipped"
)

// Mirror escreve/atualiza a linha de uma aposta na planilha externa.
type Mirror interface {
	CreateLine(ctx context.Context, w *Wager, sourceTitle string) (MirrorStatus, error)
	UpdateLine(ctx context.Context, w *Wager, sourceTitle string) (MirrorStatus, error)
}

// MirrorRegistry roteia o escritor de planilha por chat.
type MirrorRegistry interface {
	For(chatID string) Mirror
}

// PhotoFetcher baixa os bytes da melhor resolução de uma foto do Telegram.
type PhotoFetcher interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// MarketResolver é o pedaço do resolvedor de mercados que o pipeline usa.
type MarketResolver interface {
	Resolve(ctx context.Context, rawLabel string) (market.Resolution, error)
}

// Lifecycle orquestra o pipeline por mensagem. Nenhum erro escapa dos
// handlers: toda falha vira skip, resultado degradado ou log.
type Lifecycle struct {
	log      *zap.Logger
	repo     Repo
	resolver MarketResolver
	photo    extraction.Analyzer // variante para mensagens com foto
	text     extraction.Analyzer // variante texto-puro (LLM)
	fetcher  PhotoFetcher
	mirrors  MirrorRegistry
	publ     Publisher // opcional; nil desabilita eventos
}

func NewLifecycle(
	log *zap.Logger,
	repo Repo,
	resolver MarketResolver,
	photo extraction.Analyzer,
	text extraction.Analyzer,
	fetcher PhotoFetcher,
	mirrors MirrorRegistry,
	publ Publisher,
) *Lifecycle {
	return &Lifecycle{
		log:      log,
		repo:     repo,
		resolver: resolver,
		photo:    photo,
		text:     text,
		fetcher:  fetcher,
		mirrors:  mirrors,
		publ:     publ,
	}
}

// HandleMessage processa uma mensagem nova:
// received → classified → extracted → market_resolved → persisted → mirrored.
func (l *Lifecycle) HandleMessage(ctx context.Context, msg bot.Message) {
	// comando nunca é candidato a aposta
	if msg.IsCommand() {
		return
	}

	// resposta a outra mensagem vai direto para o caminho de patch
	if msg.ReplyToID != 0 {
		l.patch(ctx, msg, msg.ReplyToID)
		return
	}

	content := msg.Content()
	if !msg.HasPhoto && content == "" {
		l.log.Debug("mensagem ignorada: sem foto ou texto",
			zap.String("chat", msg.ChatKey()))
		return
	}

	cls := classifier.Classify(msg.HasPhoto, content)
	if !cls.IsBet {
		metrics.MessagesClassified.WithLabelValues("not_bet").Inc()
		l.log.Info("mensagem ignorada: não identificada como aposta",
			zap.Float64("confidence", cls.Confidence),
			zap.Strings("reasons", cls.Reasons))
		return
	}
	metrics.MessagesClassified.WithLabelValues("is_bet").Inc()

	draft := l.extract(ctx, msg, content)

	// legenda tem prioridade sobre o que a extração adivinhou
	if units, rest, ok := textutil.ExtractUnits(content); ok {
		draft.Units = units
		if draft.Odd == 0 {
			if odd, ok := textutil.ExtractOdd(rest); ok {
				draft.Odd = odd
			}
		}
	} else if draft.Odd == 0 {
		if odd, ok := textutil.ExtractOdd(content); ok {
			draft.Odd = odd
		}
	}

	var marketID int64
	if draft.Market != "" {
		res, err := l.resolver.Resolve(ctx, draft.Market)
		if err != nil {
			// mantém o rótulo bruto só para exibição, sem id
			l.log.Warn("falha ao resolver mercado, mantendo rótulo bruto",
				zap.String("market", draft.Market), zap.Error(err))
		} else if res.Market != nil {
			draft.Market = res.Market.Name
			marketID = res.Market.ID
		}
	}

	w := &Wager{
		HomeTeam:  draft.HomeTeam,
		AwayTeam:  draft.AwayTeam,
		MarketID:  marketID,
		Market:    draft.Market,
		Odd:       draft.Odd,
		Units:     draft.Units,
		ChatID:    msg.ChatKey(),
		MessageID: strconv.Itoa(msg.MessageID),
	}
	if err := l.repo.Create(ctx, w); err != nil {
		l.log.Error("falha ao persistir aposta", zap.Error(err))
		return
	}
	metrics.WagersRecorded.Inc()
	l.log.Info("aposta registrada",
		zap.Int64("wager_id", w.ID),
		zap.String("market", w.Market),
		zap.Float64("odd", w.Odd),
		zap.Float64("units", w.Units),
		zap.String("notes", draft.Notes))

	l.mirror(ctx, w, msg.ForwardTitle, false)
}

// HandleEdit processa a edição de uma mensagem já vista:
// received → matched_existing → patched → mirrored.
func (l *Lifecycle) HandleEdit(ctx context.Context, msg bot.Message) {
	l.patch(ctx, msg, msg.MessageID)
}

func (l *Lifecycle) extract(ctx context.Context, msg bot.Message, content string) extraction.Draft {
	if msg.HasPhoto {
		img, err := l.fetcher.Download(ctx, msg.PhotoFileID)
		if err != nil {
			// falha de download é dado, não erro do pipeline
			l.log.Warn("falha ao baixar foto", zap.Error(err))
			return extraction.Draft{Notes: "Falha ao baixar a foto do Telegram: " + err.Error()}
		}
		return l.photo.Analyze(ctx, img, content)
	}
	return l.text.Analyze(ctx, nil, content)
}

// patch rechecagem dos campos de desfecho de uma aposta existente. Campos sem
// sinal novo no texto preservam o valor armazenado.
func (l *Lifecycle) patch(ctx context.Context, msg bot.Message, targetMessageID int) {
	chatID := msg.ChatKey()
	if targetMessageID == 0 || chatID == "" {
		l.log.Debug("patch ignorado: faltando message_id ou chat_id")
		return
	}

	w, err := l.repo.FindByMessage(ctx, chatID, strconv.Itoa(targetMessageID))
	if err != nil {
		l.log.Error("falha ao buscar aposta para patch", zap.Error(err))
		return
	}
	if w == nil {
		// não é erro: mensagem respondida/editada não era uma aposta registrada
		l.log.Info("patch ignorado: aposta não encontrada",
			zap.String("chat", chatID), zap.Int("message_id", targetMessageID))
		return
	}

	content := msg.Content()
	units, odd, hasUnits, hasOdd := textutil.ExtractUnitsAndOdd(content)
	outcome := ParseOutcome(content)

	if hasUnits {
		w.Units = units
	}
	if hasOdd {
		w.Odd = odd
	}
	if outcome != OutcomeNone {
		w.Result = outcome
	}

	if err := l.repo.Update(ctx, w); err != nil {
		l.log.Error("falha ao atualizar aposta", zap.Error(err))
		return
	}
	metrics.WagersPatched.Inc()
	l.log.Info("aposta atualizada via resposta/edição",
		zap.Int64("wager_id", w.ID),
		zap.Float64("units", w.Units),
		zap.Float64("odd", w.Odd),
		zap.String("result", string(w.Result)))

	l.mirror(ctx, w, msg.ForwardTitle, true)
}

// mirror escreve na planilha (best effort) e publica o evento. Falha de
// espelhamento é logada, nunca desfaz a aposta já persistida.
func (l *Lifecycle) mirror(ctx context.Context, w *Wager, sourceTitle string, patched bool) {
	m := l.mirrors.For(w.ChatID)
	var status MirrorStatus
	var err error
	if patched {
		status, err = m.UpdateLine(ctx, w, sourceTitle)
	} else {
		status, err = m.CreateLine(ctx, w, sourceTitle)
	}
	if err != nil {
		metrics.MirrorFailures.Inc()
		l.log.Error("falha ao espelhar aposta na planilha",
			zap.Int64("wager_id", w.ID), zap.Error(err))
	} else {
		l.log.Info("planilha espelhada",
			zap.Int64("wager_id", w.ID), zap.String("status", string(status)))
	}

	if l.publ == nil {
		return
	}
	err = l.publ.PublishWagerRecorded(ctx, events.WagerRecorded{
		WagerID:   w.ID,
		ChatID:    w.ChatID,
		MessageID: w.MessageID,
		HomeTeam:  w.HomeTeam,
		AwayTeam:  w.AwayTeam,
		Market:    w.Market,
		Odd:       w.Odd,
		Units:     w.Units,
		Result:    string(w.Result),
		Patched:   patched,
	})
	if err != nil {
		l.log.Warn("falha ao publicar evento de aposta", zap.Error(err))
	}
}
