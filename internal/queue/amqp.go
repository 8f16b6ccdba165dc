package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// ProcessJob is the payload carried on the campaign_process queue.
type ProcessJob struct {
	CampaignID int `json:"campaign_id"`
}

// AMQPQueue publishes jobs to RabbitMQ. Consumption happens in cmd/worker,
// which needs ack/nack control the Queue interface does not expose.
type AMQPQueue struct {
	ch *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &AMQPQueue{ch: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	queue, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe delivers each message to the handler, acking on success and
// requeueing once on failure.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	queue, err := q.ch.QueueDeclare(topic, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := q.ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			var payload any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				d.Ack(false)
				continue
			}
			if err := handler(payload); err != nil {
				d.Nack(false, !d.Redelivered)
				continue
			}
			d.Ack(false)
		}
	}()

	return nil
}

var _ Queue = (*AMQPQueue)(nil)
var _ Queue = (*InMemoryQueue)(nil)
