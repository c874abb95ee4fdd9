package events

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// QueueConfig привязка очереди к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// AuditQueues привязывает очередь аудита ко всем ключам.
func AuditQueues() []QueueConfig {
	queues := make([]QueueConfig, 0, len(RoutingKeys))
	for _, key := range RoutingKeys {
		queues = append(queues, QueueConfig{QueueName: AuditQueue, RoutingKey: key})
	}
	return queues
}

// Connect подключается к брокеру с повторами.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "events.Connect"
	var conn *amqp.Connection
	var err error

	if retries < 1 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		if i < retries-1 {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал, объявляет direct exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "events.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	declared := make(map[string]bool)
	for _, q := range queues {
		if !declared[q.QueueName] {
			if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
				return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
			}
			declared[q.QueueName] = true
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
