package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/mental-wellness-api/internal/logging"
)

// ActivityConsumer listens on the entry events queue and appends one line per
// event to an activity log file.
type ActivityConsumer struct {
	url     string
	queue   string
	logPath string
	log     logging.Logger
}

func NewActivityConsumer(url, queue, logPath string, log logging.Logger) *ActivityConsumer {
	return &ActivityConsumer{url: url, queue: queue, logPath: logPath, log: log}
}

// Run dials the broker and consumes until ctx is cancelled, reconnecting with
// exponential backoff (capped at 30s) whenever the connection drops.
func (c *ActivityConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn(ctx, "activity-consumer: failed to dial broker", "err", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "activity-consumer: consume loop ended; reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *ActivityConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn(ctx, "activity-consumer: set QoS failed", "err", err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.log.Error(ctx, "activity-consumer: handle message failed", "err", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *ActivityConsumer) handleMessage(body []byte) error {
	var ev EntryEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if dir := filepath.Dir(c.logPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatActivityLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatActivityLine(ev EntryEvent) string {
	line := fmt.Sprintf("[%s] %s | kind=%s | entry_id=%d | user_id=%d | user=%q",
		ev.OccurredAt, ev.Type, ev.Kind, ev.EntryID, ev.UserID, ev.Username)
	if ev.Mood != "" {
		line += fmt.Sprintf(" | mood=%q", ev.Mood)
	}
	if ev.Title != "" {
		line += fmt.Sprintf(" | title=%q", ev.Title)
	}
	if ev.SentimentScore != nil {
		line += fmt.Sprintf(" | sentiment=%.1f", *ev.SentimentScore)
	}
	return line + "\n"
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
