package main

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/sheets"
	"github.com/texasgambler/bet-monitor/internal/shared/config"
	"github.com/texasgambler/bet-monitor/internal/shared/db"
	"github.com/texasgambler/bet-monitor/internal/shared/kafka"
	"github.com/texasgambler/bet-monitor/internal/shared/logger"
	"github.com/texasgambler/bet-monitor/internal/shared/metrics"
	"github.com/texasgambler/bet-monitor/internal/wager"
	ev "github.com/texasgambler/bet-monitor/pkg/contracts/events"
)

// Worker que reespelha apostas na planilha a partir dos eventos
// wager_recorded. Roda separado do bot: uma planilha fora do ar não segura o
// consumo de mensagens do Telegram.
func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS não configurado")
	}
	if cfg.SheetsCredentialsFile == "" {
		log.Fatal("GOOGLE_SHEETS_CREDENTIALS_FILE não configurado")
	}

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	sheetsClient, err := sheets.NewClient(context.Background(), cfg.SheetsCredentialsFile)
	if err != nil {
		log.Fatal("sheets", zap.Error(err))
	}
	wagerRepo := wager.NewPostgres(pg)
	registry := sheets.NewRegistry(sheetsClient, sheets.NewStore(pg), wagerRepo, log)

	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicWagerRecorded, "sheet-mirror")
	defer reader.Close()

	var dlqWriter *kafka.Writer
	if cfg.TopicWagerRecordedDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWagerRecordedDLQ)
		defer dlqWriter.Close()
	}

	metrics.MustRegisterPipeline()
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	log.Info("sheet-mirror-worker started",
		zap.String("consume", cfg.TopicWagerRecorded),
		zap.String("dlq", cfg.TopicWagerRecordedDLQ),
	)

	ctx := context.Background()
	for {
		_, value, err := kafka.ReadNext(ctx, reader)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var e ev.WagerRecorded
		if jerr := json.Unmarshal(value, &e); jerr != nil {
			log.Error("unmarshal wager_recorded", zap.Error(jerr))
			continue
		}

		if err := mirrorOne(ctx, log, wagerRepo, registry, &e); err != nil {
			metrics.MirrorFailures.Inc()
			log.Error("mirror wager", zap.Int64("wagerId", e.WagerID), zap.Error(err))
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, e.ChatID, value)
			}
		}
	}
}

// mirrorOne recarrega a aposta do banco (o evento pode estar defasado) e
// reescreve a linha. Retry simples antes de mandar pra DLQ.
func mirrorOne(ctx context.Context, log *zap.Logger, repo wager.Repo, registry *sheets.Registry, e *ev.WagerRecorded) error {
	w, err := repo.FindByMessage(ctx, e.ChatID, e.MessageID)
	if err != nil {
		return err
	}
	if w == nil {
		log.Warn("aposta do evento não encontrada",
			zap.Int64("wagerId", e.WagerID), zap.String("chat", e.ChatID))
		return nil
	}

	// UpdateLine reaproveita a linha já espelhada pelo bot e cria uma nova
	// só quando a aposta nunca chegou na planilha
	mirror := registry.For(w.ChatID)
	const retries = 3
	for i := 0; ; i++ {
		var status wager.MirrorStatus
		status, err = mirror.UpdateLine(ctx, w, "")
		if err == nil {
			log.Info("linha reespelhada",
				zap.String("wagerId", strconv.FormatInt(w.ID, 10)),
				zap.String("status", string(status)))
			return nil
		}
		if i == retries-1 {
			return err
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
}
