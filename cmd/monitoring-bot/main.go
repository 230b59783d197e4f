package main

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/bot"
	"github.com/texasgambler/bet-monitor/internal/extraction"
	"github.com/texasgambler/bet-monitor/internal/gemini"
	"github.com/texasgambler/bet-monitor/internal/market"
	"github.com/texasgambler/bet-monitor/internal/report"
	"github.com/texasgambler/bet-monitor/internal/sheets"
	"github.com/texasgambler/bet-monitor/internal/shared/cache"
	"github.com/texasgambler/bet-monitor/internal/shared/config"
	"github.com/texasgambler/bet-monitor/internal/shared/db"
	skafka "github.com/texasgambler/bet-monitor/internal/shared/kafka"
	"github.com/texasgambler/bet-monitor/internal/shared/logger"
	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
	"github.com/texasgambler/bet-monitor/internal/wager"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	if err := cfg.ValidateBot(); err != nil {
		log.Fatal("config", zap.Error(err))
	}

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis (cache de sinônimos)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	metrics.MustRegisterPipeline()
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	// Gemini
	llm, err := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal("gemini", zap.Error(err))
	}

	// mercados
	marketRepo := market.NewPostgres(pg)
	if cfg.SeedMarkets {
		if err := market.Seed(context.Background(), marketRepo); err != nil {
			log.Fatal("seed de mercados", zap.Error(err))
		}
		log.Info("taxonomia de mercados populada")
	}
	resolver := market.NewResolver(
		marketRepo,
		market.NewCache(rdb, 24*time.Hour),
		market.NewGeminiClassifier(llm),
		log,
	)

	// extração
	textAnalyzer := extraction.NewGeminiAnalyzer(llm, log)
	photoAnalyzer := extraction.Analyzer(textAnalyzer)
	if cfg.ExtractionVariant == "ocr" {
		photoAnalyzer = extraction.NewOCRAnalyzer(extraction.NewTesseractEngine(), log)
	}
	log.Info("extração configurada", zap.String("variant", cfg.ExtractionVariant))

	// planilhas (opcional: sem credenciais o espelhamento vira no-op)
	wagerRepo := wager.NewPostgres(pg)
	var registry *sheets.Registry
	if cfg.SheetsCredentialsFile != "" {
		sheetsClient, err := sheets.NewClient(context.Background(), cfg.SheetsCredentialsFile)
		if err != nil {
			log.Fatal("sheets", zap.Error(err))
		}
		registry = sheets.NewRegistry(sheetsClient, sheets.NewStore(pg), wagerRepo, log)
	} else {
		registry = sheets.NewRegistry(nil, nil, nil, log)
		log.Warn("GOOGLE_SHEETS_CREDENTIALS_FILE vazio, espelhamento desabilitado")
	}

	// eventos (opcional)
	var publ wager.Publisher
	if cfg.KafkaBrokers != "" {
		writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWagerRecorded)
		defer writer.Close()
		publ = wager.NewKafkaPublisher(writer)
	}

	// Telegram
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal("telegram", zap.Error(err))
	}
	log.Info("bot autenticado", zap.String("username", api.Self.UserName))

	lifecycle := wager.NewLifecycle(
		log, wagerRepo, resolver,
		photoAnalyzer, textAnalyzer,
		bot.NewDownloader(api), registry, publ,
	)
	aggregator := report.NewAggregator(wagerRepo)

	updCfg := tgbotapi.NewUpdate(0)
	updCfg.Timeout = 30
	updates := api.GetUpdatesChan(updCfg)

	log.Info("monitorando mensagens")
	for update := range updates {
		msg, ok := bot.FromUpdate(update)
		if !ok {
			continue
		}
		go handle(api, lifecycle, aggregator, log, msg)
	}
}

// handle roteia um update. Cada mensagem roda na própria goroutine; um panic
// em qualquer etapa derruba só aquela mensagem.
func handle(api *tgbotapi.BotAPI, lc *wager.Lifecycle, agg *report.Aggregator, log *zap.Logger, msg bot.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic ao processar mensagem", zap.Any("panic", r),
				zap.String("chat", msg.ChatKey()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if msg.IsCommand() && !msg.Edited {
		for _, chunk := range commandReply(ctx, agg, log, msg) {
			reply := tgbotapi.NewMessage(msg.ChatID, chunk)
			if _, err := api.Send(reply); err != nil {
				log.Error("falha ao responder comando", zap.Error(err))
			}
		}
		return
	}

	if msg.Edited {
		lc.HandleEdit(ctx, msg)
		return
	}
	lc.HandleMessage(ctx, msg)
}

func commandReply(ctx context.Context, agg *report.Aggregator, log *zap.Logger, msg bot.Message) []string {
	cmd := strings.TrimSpace(msg.Text)
	if i := strings.Index(cmd, "@"); i > 0 { // /dia@nome_do_bot
		cmd = cmd[:i]
	}

	var period report.Period
	switch cmd {
	case "/dia":
		period = report.PeriodDay
	case "/semana":
		period = report.PeriodWeek
	case "/mes":
		period = report.PeriodMonth
	case "/abertas":
		ws, err := agg.OpenWagers(ctx, msg.ChatKey())
		if err != nil {
			log.Error("falha ao listar apostas em aberto", zap.Error(err))
			return []string{"⚠️ Não consegui consultar as apostas agora."}
		}
		return report.FormatOpen(ws)
	case "/ajuda", "/start", "/help":
		return []string{report.HelpText}
	default:
		return nil // comando desconhecido fica sem resposta
	}

	stats, err := agg.StatsFor(ctx, msg.ChatKey(), period, time.Now())
	if err != nil {
		log.Error("falha ao montar relatório", zap.Error(err))
		return []string{"⚠️ Não consegui montar o relatório agora."}
	}
	return []string{report.FormatStats(period, stats)}
}
