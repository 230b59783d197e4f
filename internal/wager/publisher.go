package wager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/texasgambler/bet-monitor/pkg/contracts/events"
)

// Publisher emite eventos de aposta registrada/atualizada para consumidores
// downstream (sheet-mirror-worker). Opcional no pipeline.
type Publisher interface {
	PublishWagerRecorded(ctx context.Context, e events.WagerRecorded) error
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishWagerRecorded(ctx context.Context, e events.WagerRecorded) error {
	e.EventID = uuid.NewString()
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.ChatID), Value: b})
}
