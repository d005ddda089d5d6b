package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/J-Ferr/ecommerce-api/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

// messageWriter は kafka.Writer のうち使う部分だけ
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher は注文確定イベントをKafkaへ送る
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
	}
	log.Info("kafka publisher created", "brokers", brokers, "topic", topic)
	return &KafkaPublisher{writer: w, topic: topic, log: log}
}

// 同じユーザーの注文は同じパーティションに載せる
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.UserID, 10)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	p.log.DebugContext(ctx, "order event sent", "topic", p.topic, "order_id", ev.OrderID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher はKafka未設定時に使う
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
