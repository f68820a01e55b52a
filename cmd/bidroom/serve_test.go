package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonhazen/bidroom/internal/config"
	"github.com/wilsonhazen/bidroom/internal/store"
)

func stubStore(t *testing.T, closed *int) {
	t.Helper()
	prev := openStoreFunc
	openStoreFunc = func(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, func(context.Context), error) {
		return store.NewMemoryStore(), func(context.Context) { *closed++ }, nil
	}
	t.Cleanup(func() { openStoreFunc = prev })
}

func TestOpenBackends_ClosesStoreWhenEventsFail(t *testing.T) {
	var closed int
	stubStore(t, &closed)

	cfg := config.Defaults()
	cfg.NATSURL = "nats://%zz"

	_, err := openBackends(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Equal(t, 1, closed)
}

func TestOpenBackends_KeepsStoreOpen(t *testing.T) {
	var closed int
	stubStore(t, &closed)

	cfg := config.Defaults()
	cfg.WebhookURL = "http://127.0.0.1:9/events"

	b, err := openBackends(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.NotNil(t, b.store)
	assert.NotNil(t, b.publisher)
	assert.Equal(t, 0, closed)

	b.closeEvents()
	b.closeStore(context.Background())
	assert.Equal(t, 1, closed)
}
