package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"

	"price-stream-backend/internal/config"
	"price-stream-backend/internal/models"
)

// UpdateEnvelope is the message shape written to the topic. Type is "price"
// or "kline" and tells consumers which data shape to expect.
type UpdateEnvelope struct {
	Type  string              `json:"type"`
	Price *models.PriceUpdate `json:"price,omitempty"`
	Kline *models.KlineUpdate `json:"kline,omitempty"`
}

// Publisher writes stream updates to Kafka. Messages are keyed by symbol so
// per-symbol ordering survives partitioning.
type Publisher struct {
	w *kafkaGo.Writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return &Publisher{
		w: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(cfg.BrokerURL),
			Topic:    cfg.Topic,
			Balancer: &kafkaGo.Hash{},
		},
	}
}

func (p *Publisher) PublishPrice(ctx context.Context, u models.PriceUpdate) error {
	return p.publish(ctx, u.Symbol, UpdateEnvelope{Type: "price", Price: &u})
}

func (p *Publisher) PublishKline(ctx context.Context, u models.KlineUpdate) error {
	return p.publish(ctx, u.Symbol, UpdateEnvelope{Type: "kline", Kline: &u})
}

func (p *Publisher) publish(ctx context.Context, key string, env UpdateEnvelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling %s update: %w", env.Type, err)
	}
	return p.w.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
