// Package events публикует события аудита административных действий в RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Ключи маршрутизации событий.
const (
	CategoryCreated = "category.created"
	CategoryRenamed = "category.renamed"
	CategoryDeleted = "category.deleted"
	MagazineCreated = "magazine.created"
	UserDeleted     = "user.deleted"
	FileUploaded    = "file.uploaded"
)

// AuditQueue очередь, в которую попадают все события.
const AuditQueue = "magazine-admin.audit"

// RoutingKeys все ключи, которые публикует сервис.
var RoutingKeys = []string{
	CategoryCreated, CategoryRenamed, CategoryDeleted,
	MagazineCreated, UserDeleted, FileUploaded,
}

// Publisher публикует событие с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Envelope оболочка события в очереди.
type Envelope struct {
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// NopPublisher ничего не публикует. Используется, когда брокер не настроен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// AMQPPublisher публикует события в direct exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	now      func() time.Time

	mu sync.Mutex
}

// NewAMQPPublisher подключается к брокеру, объявляет exchange и очередь аудита.
func NewAMQPPublisher(url, exchange string, retries int, delay time.Duration) (*AMQPPublisher, error) {
	const op = "events.NewAMQPPublisher"

	conn, err := Connect(url, retries, delay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupChannel(conn, exchange, AuditQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// Publish сериализует payload в Envelope и публикует его как persistent JSON.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	const op = "events.Publish"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	env := Envelope{Key: routingKey, OccurredAt: p.now().UTC(), Payload: body}

	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, routingKey, env)
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return fmt.Errorf("events.Close: %w", err)
	}
	return p.conn.Close()
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingKey string, message any) error {
	const op = "events.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
