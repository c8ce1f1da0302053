package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"eats-backend/internal/events"
	"eats-backend/internal/logx"
)

// HandleFunc processes a single order event from Kafka. A returned error
// triggers redelivery unless it is Permanent.
type HandleFunc func(context.Context, events.OrderEvent) error

// overridable in tests
var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches order events to
// a handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a Kafka consumer. Missing brokers, group id or
// topic disable consuming: the returned nil Consumer is safe to use.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(groupID) == "" || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
	}, nil
}

// Run consumes until ctx is canceled. Rebalances re-enter Consume;
// transport errors back off for a second and retry.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts the consumer group down. No-op on a nil Consumer.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var dto EventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			h.c.logger.Warn("kafka bad json", logx.Err(err))
			sess.MarkMessage(msg, "")
			continue
		}

		ev := ToEvent(dto)
		if ev.OrderID <= 0 || ev.Type == "" {
			h.c.logger.Warn("kafka malformed event",
				logx.String("type", ev.Type),
				logx.Int64("order_id", ev.OrderID))
			sess.MarkMessage(msg, "")
			continue
		}

		if err := h.c.handler(sess.Context(), ev); err != nil {
			if !IsPermanent(err) {
				h.c.logger.Error("kafka handle failed, will redeliver",
					logx.String("type", ev.Type),
					logx.Int64("order_id", ev.OrderID),
					logx.Err(err))
				return err
			}
			h.c.logger.Warn("kafka handle failed permanently, skipping message",
				logx.String("type", ev.Type),
				logx.Int64("order_id", ev.OrderID),
				logx.Err(err))
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}
