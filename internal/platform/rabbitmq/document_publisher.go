package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phuslu/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"documind/internal/logging"
	"documind/internal/model"
)

// EventDocumentCreated is the routing key of a newly registered record.
const EventDocumentCreated = "document.created"

// DocumentEvent is the JSON body published for each registered record.
type DocumentEvent struct {
	Event      string         `json:"event"`
	Document   model.Document `json:"document"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// DocumentPublisher announces registered records on a durable topic exchange.
type DocumentPublisher struct {
	open     func() (channel, error)
	exchange string
	now      func() time.Time
	log      *log.Logger
}

func NewDocumentPublisher(conn *amqp.Connection, exchange string, logger *log.Logger) *DocumentPublisher {
	return newDocumentPublisher(func() (channel, error) { return conn.Channel() }, exchange, logger)
}

func newDocumentPublisher(open func() (channel, error), exchange string, logger *log.Logger) *DocumentPublisher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &DocumentPublisher{open: open, exchange: exchange, now: time.Now, log: logger}
}

func (p *DocumentPublisher) Publish(ctx context.Context, doc model.Document) error {
	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange failed: %w", err)
	}

	payload, err := json.Marshal(DocumentEvent{Event: EventDocumentCreated, Document: doc, OccurredAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal document event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		p.exchange,
		EventDocumentCreated,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    doc.ID,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish document event failed: %w", err)
	}
	return nil
}

// Notify publishes doc and logs a failure instead of returning it, so it can
// be registered as a registry subscriber.
func (p *DocumentPublisher) Notify(ctx context.Context, doc model.Document) {
	if err := p.Publish(ctx, doc); err != nil {
		p.log.Error().Str("component", "rabbitmq").Str("event", "publish_failed").
			Str("document_id", doc.ID).Err(err).Msg("")
	}
}
