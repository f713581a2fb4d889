package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"maison-heritage-store/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderPlaced is the analytics event emitted after a successful checkout.
type OrderPlaced struct {
	OrderNumber   string    `json:"order_number"`
	Email         string    `json:"email"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Producer publishes analytics events fire-and-forget. Publishing failures are
// logged, never surfaced to the shopper; the order is already committed by the
// time an event leaves the process.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer returns a disabled producer when no brokers are configured.
func NewProducer(kafkaCfg *config.Kafka, logger *zap.Logger) *Producer {
	if kafkaCfg.Brokers == "" {
		return &Producer{logger: logger}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(kafkaCfg.Brokers, ",")...),
		Topic:        kafkaCfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	return &Producer{writer: writer, logger: logger}
}

func (p *Producer) Enabled() bool {
	return p != nil && p.writer != nil
}

func (p *Producer) PublishOrderPlaced(ctx context.Context, event *OrderPlaced) {
	if !p.Enabled() {
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal order event", zap.String("order_number", event.OrderNumber), zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: value,
	})
	if err != nil {
		p.logger.Error("publish order event", zap.String("order_number", event.OrderNumber), zap.Error(err))
	}
}

func (p *Producer) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
