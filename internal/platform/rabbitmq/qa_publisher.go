package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"smartfaq/internal/model"
)

// QAPublisher hands finished question/answer records to the persist queue.
// The query pipeline publishes and moves on; durability is the worker's job.
type QAPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewQAPublisher(conn *amqp.Connection, queueName string) *QAPublisher {
	return &QAPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *QAPublisher) Publish(ctx context.Context, record model.QARecord) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal qa record failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish qa record failed: %w", err)
	}
	return nil
}
