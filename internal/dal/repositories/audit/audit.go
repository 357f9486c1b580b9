package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/lucianotavernard/order-svc/internal/dal/rabbitmq"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
)

// AuditRabbitMQRepository publishes order audit events to RabbitMQ.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

func NewAuditRabbitMQRepository(client *rabbitmq.Client) *AuditRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       "oms.order.created",
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// LogOrderCreated publishes the created order as a JSON audit event.
func (r *AuditRabbitMQRepository) LogOrderCreated(ctx context.Context, o order.Order) error {
	_ = ctx // amqp publish does not take a context

	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order for audit: %w", err)
	}

	err = r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order audit event: %w", err)
	}

	return nil
}
