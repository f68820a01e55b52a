package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// natsPublisher is the slice of *nats.Conn the transport needs.
type natsPublisher interface {
	Publish(subj string, data []byte) error
}

// NATSTransport publishes envelopes on <prefix>.<event_type>.
type NATSTransport struct {
	conn   natsPublisher
	prefix string
	closer func()
}

func ConnectNATS(url, prefix string) (*NATSTransport, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("bidroom"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	t := NewNATSTransport(conn, prefix)
	t.closer = func() { _ = conn.Drain() }
	return t, nil
}

func NewNATSTransport(conn natsPublisher, prefix string) *NATSTransport {
	if prefix == "" {
		prefix = "bidroom.events"
	}
	return &NATSTransport{conn: conn, prefix: prefix}
}

func (t *NATSTransport) Name() string { return "nats" }

func (t *NATSTransport) Subject(eventType string) string {
	return t.prefix + "." + eventType
}

func (t *NATSTransport) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := t.conn.Publish(t.Subject(env.EventType), body); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

func (t *NATSTransport) Close() {
	if t.closer != nil {
		t.closer()
	}
}
