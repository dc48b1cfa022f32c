package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"weather-display/pkg/observe"
)

// Notification is one push broadcast.
type Notification struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Recipients int       `json:"recipients"`
	SentAt     time.Time `json:"sent_at"`
}

// Publisher delivers notifications to devices.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// LogPublisher only logs notifications.
type LogPublisher struct {
	l *observe.Logger
}

func NewLogPublisher(l *observe.Logger) *LogPublisher {
	return &LogPublisher{l: l}
}

func (p *LogPublisher) Publish(_ context.Context, n Notification) error {
	p.l.Info("push notification", map[string]any{
		"id":         n.ID,
		"message":    n.Message,
		"recipients": n.Recipients,
	})
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// KafkaPublisher produces notifications to a Kafka topic for the push
// gateway to consume.
type KafkaPublisher struct {
	writer *kafkago.Writer
	l      *observe.Logger
}

func NewKafkaPublisher(brokers []string, topic string, l *observe.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaPublisher{writer: w, l: l}
}

func (p *KafkaPublisher) Publish(ctx context.Context, n Notification) error {
	msg, err := serializeToMessage(n)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}

	p.l.Debug("notification published", map[string]any{"id": n.ID, "topic": p.writer.Topic})
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(n Notification) (kafkago.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(n.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "recipients", Value: []byte(strconv.Itoa(n.Recipients))},
			{Key: "sent_at", Value: []byte(n.SentAt.Format(time.RFC3339))},
		},
	}, nil
}
