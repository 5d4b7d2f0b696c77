package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// Publisher emits ledger domain events to a Kafka topic. The event name goes
// into the message key so consumers can partition and filter by event type.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// Publish marshals the payload and writes it keyed by event name.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
