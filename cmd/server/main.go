// Command server runs the polisflow document workflow engine. main wires the
// stores, the lifecycle service, the expiry sweep, and the HTTP router;
// business logic lives under internal/.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polisflow/internal/carrier"
	"polisflow/internal/delivery"
	"polisflow/internal/document/service"
	"polisflow/internal/document/store"
	"polisflow/internal/events"
	"polisflow/internal/platform/config"
	"polisflow/internal/platform/logger"
	"polisflow/internal/platform/metrics"
	"polisflow/internal/platform/postgres"
	"polisflow/internal/platform/redis"
	"polisflow/internal/sweep"
	httptransport "polisflow/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Document store: postgres when configured, in-memory for development.
	var docStore store.Store
	if cfg.PostgresURL != "" {
		pool, err := postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()

		pgStore := store.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Error("failed to ensure schema", "error", err.Error())
			os.Exit(1)
		}
		docStore = pgStore
		log.Info("using postgres document store")
	} else {
		docStore = store.NewMemoryStore()
		log.Warn("POLISFLOW_POSTGRES_URL not set; using in-memory document store")
	}

	// Carrier catalog, optionally cached in redis.
	var carriers []carrier.Carrier
	if cfg.CarriersFile != "" {
		loaded, err := carrier.LoadFile(cfg.CarriersFile)
		if err != nil {
			log.Error("failed to load carrier catalog", "error", err.Error())
			os.Exit(1)
		}
		carriers = loaded
	}
	var catalog carrier.Catalog = carrier.NewMemoryCatalog(carriers)
	if cfg.Redis.URL != "" {
		rdb, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", "error", err.Error())
			os.Exit(1)
		}
		defer rdb.Close()
		catalog = carrier.NewCachedCatalog(catalog, rdb.Client, cfg.Redis.CacheTTL)
		log.Info("carrier catalog cached in redis", "ttl", cfg.Redis.CacheTTL.String())
	}

	// Lifecycle event stream: kafka when brokers are configured, otherwise an
	// in-memory ring for local inspection.
	var eventStore events.Store
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err.Error())
			os.Exit(1)
		}
		defer sink.Close()
		eventStore = sink
		log.Info("publishing lifecycle events to kafka", "topic", cfg.Kafka.Topic)
	} else {
		eventStore = events.NewMemoryStore()
	}
	publisher := events.NewPublisher(eventStore, events.WithAsyncBuffer(256))
	defer publisher.Close()

	dispatch := delivery.NewLogDelivery(log)
	svc := service.New(docStore, catalog, dispatch, dispatch, publisher, m, log)

	// The sweeper emits through the publisher; it must be drained before the
	// deferred publisher.Close runs.
	sweeper := sweep.New(docStore, svc, m, log, cfg.SweepInterval)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("expiry sweep stopped", "error", err.Error())
		}
	}()

	handler := httptransport.NewHandler(svc, catalog, log, cfg.DefaultExpiryDays)
	// WriteTimeout sits above the router's 30s request timeout so the
	// middleware, not the server, cuts off slow handlers.
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httptransport.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		log.Info("starting polisflow", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
	<-sweepDone
}
