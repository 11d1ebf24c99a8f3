package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventPublisher mirrors order notifications onto a Kafka topic so
// downstream consumers (fulfilment, analytics) hear about orders
// without polling the merchant inbox.
type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &EventPublisher{writer: w}
}

type orderPlacedEvent struct {
	EventID       string    `json:"event_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Username      string    `json:"username"`
	Total         string    `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	PaymentID     string    `json:"payment_id,omitempty"`
	PlacedAt      time.Time `json:"placed_at"`
}

func (p *EventPublisher) NotifyOrderPlaced(ctx context.Context, n OrderNotification) error {
	event := orderPlacedEvent{
		EventID:       uuid.NewString(),
		CustomerName:  n.CustomerName,
		CustomerEmail: n.CustomerEmail,
		Username:      n.Username,
		Total:         n.Total.StringFixed(2),
		PaymentMethod: n.PaymentMethod,
		PaymentID:     n.PaymentID,
		PlacedAt:      time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(n.Username), // one partition per shopper for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
