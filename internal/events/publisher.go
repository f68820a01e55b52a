package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// Transport delivers an envelope somewhere outside the process.
type Transport interface {
	Name() string
	Send(ctx context.Context, env Envelope) error
}

type BreakerConfig struct {
	// Consecutive failures before the breaker opens.
	FailureThreshold uint32
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

func (c BreakerConfig) normalize() BreakerConfig {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxCalls == 0 {
		c.HalfOpenMaxCalls = 1
	}
	return c
}

// Publisher fans events out to webhooks and any added transports. Delivery
// failures are logged and never returned to the caller.
type Publisher struct {
	source     string
	httpClient *http.Client
	breakerCfg BreakerConfig
	now        func() time.Time

	mu         sync.RWMutex
	endpoints  map[string]string // eventType -> webhook URL
	transports []Transport
	breakers   map[string]*gobreaker.CircuitBreaker[any]
}

func NewPublisher(source string) *Publisher {
	return NewPublisherWithBreaker(source, BreakerConfig{})
}

func NewPublisherWithBreaker(source string, cfg BreakerConfig) *Publisher {
	return &Publisher{
		source: source,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		breakerCfg: cfg.normalize(),
		now:        func() time.Time { return time.Now().UTC() },
		endpoints:  make(map[string]string),
		breakers:   make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// RegisterEndpoint registers a webhook endpoint for an event type.
func (p *Publisher) RegisterEndpoint(eventType, webhookURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoints[eventType] = webhookURL
}

func (p *Publisher) AddTransport(t Transport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transports = append(p.transports, t)
}

// Publish builds an envelope and delivers it. subject identifies the entity
// the event is about and feeds the idempotency key.
func (p *Publisher) Publish(ctx context.Context, eventType, subject string, data any) error {
	ts := p.now()
	env := Envelope{
		EventID:        "evt_" + uuid.NewString(),
		EventType:      eventType,
		SchemaVersion:  "1.0",
		IdempotencyKey: fmt.Sprintf("%s_%s_%d", eventType, subject, ts.Unix()),
		Timestamp:      ts,
		Source:         p.source,
		Subject:        subject,
		Data:           data,
	}

	slog.InfoContext(ctx, "event_published",
		"event_id", env.EventID,
		"event_type", env.EventType,
		"subject", env.Subject,
	)

	p.mu.RLock()
	webhookURL, hasWebhook := p.endpoints[eventType]
	transports := append([]Transport(nil), p.transports...)
	p.mu.RUnlock()

	if hasWebhook {
		p.deliver(ctx, "webhook", env, func(ctx context.Context) error {
			return p.sendWebhook(ctx, webhookURL, env)
		})
	}
	for _, t := range transports {
		p.deliver(ctx, t.Name(), env, func(ctx context.Context) error {
			return t.Send(ctx, env)
		})
	}
	return nil
}

func (p *Publisher) deliver(ctx context.Context, name string, env Envelope, send func(context.Context) error) {
	_, err := p.breaker(name).Execute(func() (any, error) {
		return nil, send(ctx)
	})
	if err != nil {
		slog.WarnContext(ctx, "event_delivery_failed",
			"transport", name,
			"event_id", env.EventID,
			"event_type", env.EventType,
			"error", err,
		)
	}
}

func (p *Publisher) breaker(name string) *gobreaker.CircuitBreaker[any] {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.breakers[name]; ok {
		return b
	}
	cfg := p.breakerCfg
	b := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "events." + name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "transport", name, "from", from.String(), "to", to.String())
		},
	})
	p.breakers[name] = b
	return b
}

func (p *Publisher) sendWebhook(ctx context.Context, url string, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", env.EventID)
	req.Header.Set("X-Event-Type", env.EventType)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
