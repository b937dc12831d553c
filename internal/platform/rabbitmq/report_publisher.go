package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Xenowa/foodifire-backend/internal/model"
)

// ReportPublisher pushes generated-report events onto the durable audit
// queue consumed by the report log worker.
type ReportPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewReportPublisher(conn *amqp.Connection, queueName string) *ReportPublisher {
	return &ReportPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ReportPublisher) Publish(ctx context.Context, entry model.ReportLog) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal report log failed: %w", err)
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
		return fmt.Errorf("publish report log failed: %w", err)
	}
	return nil
}
