package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
)

// Publisher is the part of the RabbitMQ client the sink needs.
type Publisher interface {
	Publish(ctx context.Context, key string, body []byte, headers amqp.Table) error
}

// AMQPSink publishes records to a fanout exchange; delivery counts once the
// broker confirms the message.
type AMQPSink struct {
	pub        Publisher
	routingKey string
}

func NewAMQPSink(pub Publisher, routingKey string) *AMQPSink {
	return &AMQPSink{pub: pub, routingKey: routingKey}
}

func (s *AMQPSink) Name() string {
	return "amqp"
}

func (s *AMQPSink) Send(ctx context.Context, tx *entity.Transaction) error {
	body, err := json.Marshal(NewRecord(tx))
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	headers := amqp.Table{
		"receipt_no": tx.ReceiptNo,
		"table_id":   int32(tx.TableID),
	}
	return s.pub.Publish(ctx, s.routingKey, body, headers)
}
