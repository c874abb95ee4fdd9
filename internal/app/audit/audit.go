// Package audit собирает читателя очереди аудита.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/magazine-admin/internal/config"
	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
)

// Handler обрабатывает одно событие аудита.
type Handler func(events.Envelope) error

// App читатель очереди аудита.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	handler Handler
	logger  *slog.Logger
}

// New подключается к брокеру и объявляет очередь аудита. Если handler
// не задан, события пишутся в лог.
func New(cfg *config.Config, logger *slog.Logger, handler Handler) (*App, error) {
	const op = "app.audit.New"
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: rabbitmq url is not configured", op)
	}

	conn, err := events.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.Delay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := events.SetupChannel(conn, cfg.Exchange, events.AuditQueues())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{conn: conn, ch: ch, handler: handler, logger: logger}
	if app.handler == nil {
		app.handler = app.logEvent
	}
	return app, nil
}

// Run читает очередь до отмены ctx, затем закрывает канал и соединение.
func (a *App) Run(ctx context.Context) error {
	if err := events.Consume(ctx, a.logger, a.ch, events.AuditQueue, a.handler); err != nil {
		a.logger.Error("failed to start audit consumer", sl.Err(err))
		a.close()
		return err
	}
	a.logger.Info("consuming audit events", slog.String("queue", events.AuditQueue))

	<-ctx.Done()
	a.logger.Info("audit consumer shutting down gracefully")
	a.close()
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}

func (a *App) logEvent(e events.Envelope) error {
	a.logger.Info("audit event",
		slog.String("key", e.Key),
		slog.Time("occurred_at", e.OccurredAt),
		slog.String("payload", string(e.Payload)),
	)
	return nil
}
