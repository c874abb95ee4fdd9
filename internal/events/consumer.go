package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

// Consume читает очередь и передаёт каждое событие handler.
// Ошибка handler возвращает сообщение в очередь. Не более 10 обработчиков одновременно.
func Consume(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func(Envelope) error) error {
	const op = "events.Consume"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					var env Envelope
					if err := json.Unmarshal(d.Body, &env); err != nil {
						log.Error("malformed audit event, dropping", sl.Err(err))
						if err := d.Nack(false, false); err != nil {
							log.Error("failed to nack message", sl.Err(err))
						}
						return
					}
					if err := handler(env); err != nil {
						if err := d.Nack(false, true); err != nil {
							log.Error("failed to nack message", sl.Err(err))
						}
						return
					}
					if err := d.Ack(false); err != nil {
						log.Error("failed to ack message", sl.Err(err))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
