package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
)

// Publisher delivers an EntryEvent somewhere. Callers treat failures as
// non-fatal.
type Publisher interface {
	Publish(ctx context.Context, ev EntryEvent) error
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, EntryEvent) error { return nil }

// AMQPPublisher publishes persistent JSON messages to a durable queue on the
// default exchange. Each call dials its own connection.
type AMQPPublisher struct {
	url   string
	queue string
	log   logging.Logger
}

func NewAMQPPublisher(url, queue string, log logging.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev EntryEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn(ctx, "rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn(ctx, "rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.log.Warn(ctx, "rabbitmq: queue declare failed", "queue", p.queue, "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.log.Warn(ctx, "rabbitmq: publish failed", "queue", p.queue, "err", err)
		return err
	}
	return nil
}

// AsyncPublisher hands each event to next on its own goroutine so the request
// that produced it never waits on the broker. Close waits for in-flight
// publishes.
type AsyncPublisher struct {
	next    Publisher
	log     logging.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncPublisher(next Publisher, log logging.Logger, timeout time.Duration) *AsyncPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{next: next, log: log, timeout: timeout}
}

func (a *AsyncPublisher) Publish(ctx context.Context, ev EntryEvent) error {
	// detach from the request: it is usually finished before the publish is
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		pctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		if err := a.next.Publish(pctx, ev); err != nil {
			a.log.Warn(pctx, "event publish failed", "type", ev.Type, "kind", ev.Kind, "entry_id", ev.EntryID, "err", err)
		}
	}()
	return nil
}

func (a *AsyncPublisher) Close() { a.wg.Wait() }
