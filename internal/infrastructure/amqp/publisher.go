// Package amqp publica los eventos de la bitácora en RabbitMQ.
// Cada evento va como JSON persistente a una cola durable a través del exchange por defecto.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

var _ logbook.EventPublisher = (*Publisher)(nil)

// ErrClosed se devuelve al publicar después de Close.
var ErrClosed = errors.New("amqp: publisher cerrado")

// Publisher mantiene una conexión y un canal; el canal no es seguro para uso concurrente, de ahí el mutex.
// Sin URL configurada queda deshabilitado y las publicaciones no hacen nada.
type Publisher struct {
	mu            sync.Mutex
	conn          *amqp.Connection
	ch            *amqp.Channel
	verifiedQueue string
	lowStockQueue string
	closed        bool
	log           *logger.Logger
}

// NewPublisher abre la conexión y declara las colas. Con cfg.URL vacío devuelve un publisher deshabilitado.
func NewPublisher(cfg config.AMQPConfig, log *logger.Logger) (*Publisher, error) {
	p := &Publisher{
		verifiedQueue: cfg.VerifiedQueue,
		lowStockQueue: cfg.LowStockQueue,
		log:           log.Component("amqp"),
	}
	if cfg.URL == "" {
		p.log.Info().Msg("AMQP_URL vacío: eventos deshabilitados")
		return p, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	for _, q := range []string{p.verifiedQueue, p.lowStockQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("amqp queue declare %s: %w", q, err)
		}
	}
	p.conn, p.ch = conn, ch
	return p, nil
}

// Enabled indica si hay broker conectado.
func (p *Publisher) Enabled() bool { return p.ch != nil }

// PublishLogEntryVerified publica en la cola de verificados.
func (p *Publisher) PublishLogEntryVerified(ctx context.Context, ev logbook.LogEntryVerifiedEvent) error {
	return p.publish(ctx, p.verifiedQueue, ev)
}

// PublishLowStock publica en la cola de stock bajo.
func (p *Publisher) PublishLowStock(ctx context.Context, ev logbook.InventoryLowStockEvent) error {
	return p.publish(ctx, p.lowStockQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queue string, event any) error {
	if !p.Enabled() {
		return nil
	}
	msg, err := newPublishing(event, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("amqp publish %s: %w", queue, err)
	}
	p.log.Debug().Str("queue", queue).Msg("evento publicado")
	return nil
}

func newPublishing(event any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}

// Close cierra canal y conexión. Es idempotente.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.conn == nil {
		p.closed = true
		return nil
	}
	p.closed = true
	_ = p.ch.Close()
	return p.conn.Close()
}
