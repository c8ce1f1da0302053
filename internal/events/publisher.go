package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// Event types published on the orders topic.
const (
	TypeOrderCreated    = "order_created"
	TypeStatusChanged   = "status_changed"
	TypeCourierAssigned = "courier_assigned"
	TypeOrderDeleted    = "order_deleted"
)

// OrderEvent is the JSON message published for every committed order
// mutation. Events are emitted after commit, so consumers never see a
// state that later rolled back.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status,omitempty"`
	CourierID  *int64    `json:"courier_id,omitempty"`
	TotalCost  string    `json:"total_cost,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher writes order events to Kafka, keyed by order id so one
// order's events stay in one partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher creates a Kafka publisher. Missing brokers or topic
// disable publishing: the returned nil Publisher is safe to use.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

// Publish sends one event. No-op on a nil Publisher.
func (p *Publisher) Publish(_ context.Context, e OrderEvent) error {
	if p == nil {
		return nil
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.OrderID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("kafka: publish %s for order %d: %w", e.Type, e.OrderID, err)
	}
	return nil
}

// Close shuts the producer down.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
