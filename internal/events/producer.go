package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maison-elite/internal/config"
	"maison-elite/internal/domain"

	"github.com/segmentio/kafka-go"
)

// OrderCreatedEvent is the payload published when a checkout commits
type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Producer publishes storefront events to Kafka
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Kafka producer for the configured topic
func NewProducer(cfg config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{writer: writer}
}

// PublishOrderCreated publishes an order.created event keyed by the owning
// user so a consumer sees one user's orders in order.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	event := OrderCreatedEvent{
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Total:     order.Total.String(),
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.UserID.String()),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
