// Package feed publishes roster change events to Kafka. Publishing is best
// effort: the session controller logs failures and never fails an edit over
// a feed error.
package feed

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Topic carries every roster change event.
const Topic = "roster_events"

// Producer writes change events to the roster topic, creating the writer
// lazily on first publish.
type Producer struct {
	brokers []string

	mu     sync.Mutex
	writer *kafka.Writer
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string) *Producer {
	return &Producer{brokers: brokers}
}

// Publish marshals the payload and writes one message keyed by the partition
// key with the event type in the headers.
func (p *Producer) Publish(ctx context.Context, eventType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	return p.kafkaWriter().WriteMessages(ctx, msg)
}

func (p *Producer) kafkaWriter() *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(p.brokers...),
			Topic:        Topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return p.writer
}

// Close releases the underlying writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}
