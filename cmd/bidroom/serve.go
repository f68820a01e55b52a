package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wilsonhazen/bidroom/internal/config"
	"github.com/wilsonhazen/bidroom/internal/events"
	"github.com/wilsonhazen/bidroom/internal/httpapi"
	"github.com/wilsonhazen/bidroom/internal/logging"
	"github.com/wilsonhazen/bidroom/internal/matching"
	"github.com/wilsonhazen/bidroom/internal/metrics"
	"github.com/wilsonhazen/bidroom/internal/middleware"
	"github.com/wilsonhazen/bidroom/internal/service"
	"github.com/wilsonhazen/bidroom/internal/store"
)

const (
	serviceName     = "bidroom"
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 5 * time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Configuration comes from the YAML file named by BIDROOM_CONFIG and from
environment variables (PORT, STORE_BACKEND, MONGO_URI, POSTGRES_DSN,
FIRESTORE_PROJECT, NATS_URL, EVENTS_WEBHOOK_URL, API_KEYS, ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg config.Config) error {
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	b, err := openBackends(cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New(serviceName)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurstSize)
	svc := service.New(b.store, service.Options{
		Publisher:         b.publisher,
		Metrics:           m,
		Matcher:           matching.New(),
		Logger:            logger,
		DefaultMatchLimit: cfg.DefaultMatchLimit,
	})

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpapi.NewRouter(svc, httpapi.Options{
			Logger:      logger,
			Metrics:     m,
			APIKeys:     cfg.APIKeys,
			RateLimiter: limiter,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	pruneDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				limiter.Prune(pruneInterval)
			case <-pruneDone:
				return
			}
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "store", cfg.Backend())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case err = <-serveErr:
		logger.Error("server failed", "error", err)
	}
	close(pruneDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	b.closeEvents()
	b.closeStore(shutdownCtx)
	return err
}

// backends are the connections serve owns and releases on shutdown.
type backends struct {
	store       store.Store
	publisher   *events.Publisher
	closeStore  func(context.Context)
	closeEvents func()
}

var openStoreFunc = openStore

// openBackends connects the store, then the event transports. A store that
// was opened is closed again if the transports fail.
func openBackends(cfg config.Config, logger *slog.Logger) (backends, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	st, closeStore, err := openStoreFunc(ctx, cfg, logger)
	if err != nil {
		return backends{}, err
	}
	pub, closeEvents, err := newPublisher(cfg, logger)
	if err != nil {
		closeStore(context.Background())
		return backends{}, err
	}
	return backends{store: st, publisher: pub, closeStore: closeStore, closeEvents: closeEvents}, nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, func(context.Context), error) {
	nop := func(context.Context) {}

	switch cfg.Backend() {
	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nop, fmt.Errorf("mongo connect: %w", err)
		}
		ms := store.NewMongoStore(client, cfg.MongoDatabase, cfg.MongoCollectionContractors, cfg.MongoCollectionSnapshots)
		if err := ms.EnsureIndexes(ctx); err != nil {
			logger.Warn("mongo index creation failed", "error", err)
		}
		logger.Info("mongo enabled", "db", cfg.MongoDatabase)
		return ms, func(ctx context.Context) { _ = client.Disconnect(ctx) }, nil

	case config.BackendPostgres:
		db, err := store.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nop, err
		}
		ps := store.NewPostgresStore(db)
		if err := ps.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nop, err
		}
		logger.Info("postgres enabled")
		return ps, func(context.Context) { _ = db.Close() }, nil

	case config.BackendFirestore:
		fs, err := store.NewFirestoreStore(ctx, cfg.FirestoreProject, cfg.FirestoreCollectionContractors, cfg.FirestoreCollectionSnapshots)
		if err != nil {
			return nil, nop, err
		}
		logger.Info("firestore enabled", "project", cfg.FirestoreProject)
		return fs, func(context.Context) { _ = fs.Close() }, nil

	default:
		logger.Info("using in-memory store (set STORE_BACKEND or MONGO_URI to persist)")
		return store.NewMemoryStore(), nop, nil
	}
}

func newPublisher(cfg config.Config, logger *slog.Logger) (*events.Publisher, func(), error) {
	pub := events.NewPublisher(serviceName)
	if cfg.WebhookURL != "" {
		for _, t := range events.AllEventTypes {
			pub.RegisterEndpoint(t, cfg.WebhookURL)
		}
		logger.Info("event webhook enabled", "url", cfg.WebhookURL)
	}
	if cfg.NATSURL == "" {
		return pub, func() {}, nil
	}
	nt, err := events.ConnectNATS(cfg.NATSURL, cfg.NATSSubjectPrefix)
	if err != nil {
		return nil, nil, err
	}
	pub.AddTransport(nt)
	logger.Info("nats transport enabled", "prefix", cfg.NATSSubjectPrefix)
	return pub, nt.Close, nil
}
