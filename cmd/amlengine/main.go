package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/twmb/franz-go/pkg/kgo"

	"kycaml/internal/compliance/audit"
	"kycaml/internal/compliance/engine"
	"kycaml/internal/compliance/handler"
	compliancemetrics "kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/publisher"
	"kycaml/internal/compliance/sanctions"
	"kycaml/internal/compliance/sanctions/snapshot"
	"kycaml/internal/compliance/store"
	"kycaml/internal/compliance/vendor"
	"kycaml/internal/platform/config"
	"kycaml/internal/platform/httpserver"
	"kycaml/internal/platform/logger"
	"kycaml/internal/platform/metrics"
	"kycaml/internal/platform/redis"
	"kycaml/pkg/requestcontext"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("amlengine stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the backends, serves the API and blocks until ctx is cancelled.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry(version)
	engineMetrics := compliancemetrics.New(reg)
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithMetrics(engineMetrics),
	}
	checks := map[string]httpserver.Check{}
	var auditStore audit.Store = audit.NewInMemoryStore()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, engine.WithSnapshotStore(snapshot.NewRedis(redisClient.Client)))
		checks["redis"] = redisClient.Health
		log.Info("sanctions snapshots enabled", "backend", "redis")
	}

	if cfg.Postgres.DSN != "" {
		db, err := openPostgres(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := store.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate assessment store: %w", err)
		}
		opts = append(opts, engine.WithStore(pg))
		pgAudit := audit.NewPostgresStore(db)
		if err := pgAudit.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate audit store: %w", err)
		}
		auditStore = pgAudit
		checks["postgres"] = db.PingContext
		log.Info("assessment store enabled", "backend", "postgres")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		client, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.Brokers...),
			kgo.DefaultProduceTopic(cfg.Kafka.Topic),
		)
		if err != nil {
			return fmt.Errorf("create kafka client: %w", err)
		}
		defer client.Close()
		if err := publisher.EnsureTopic(ctx, client, cfg.Kafka.Topic, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return err
		}
		pub, err := publisher.NewKafka(client,
			publisher.WithLogger(log),
			publisher.WithMetrics(engineMetrics),
			publisher.WithTopic(cfg.Kafka.Topic),
		)
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithPublisher(pub))
		checks["kafka"] = client.Ping
		log.Info("assessment publishing enabled", "topic", pub.Topic())
	}

	if cfg.Vendor.URL != "" {
		screener := vendor.NewHTTPScreener("screening_vendor", cfg.Vendor.URL, cfg.Vendor.APIKey, 10*time.Second)
		opts = append(opts, engine.WithVendor(screener))
		log.Info("vendor screening enabled", "url", cfg.Vendor.URL)
	}

	auditor, err := audit.New(auditStore, audit.WithLogger(log), audit.WithMetrics(engineMetrics))
	if err != nil {
		return err
	}
	opts = append(opts, engine.WithAuditor(auditor))

	registry, err := sanctions.NewRegistry()
	if err != nil {
		return err
	}
	peps := sanctions.NewPEPRegistry()
	opts = append(opts, engine.WithPEPRegistry(peps))

	eng, err := engine.New(registry, cfg.Engine, opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	if err := seedSanctions(ctx, eng, registry, peps, cfg.Sanctions, log); err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Mount("/ops", httpserver.NewOpsRouter(httpserver.Readiness{
		Checks:   checks,
		OnResult: reg.SetReady,
	}, reg.Handler()))
	handler.New(eng, log).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting amlengine", "addr", cfg.Server.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// seedSanctions prefers the persisted snapshot, then the configured feed file,
// then the built-in default list. The snapshot holds sanctions lists only, so
// PEP entries always come from the feed file.
func seedSanctions(ctx context.Context, eng *engine.Engine, registry *sanctions.Registry, peps *sanctions.PEPRegistry, cfg config.SanctionsConfig, log *slog.Logger) error {
	var feed *sanctions.Feed
	if cfg.FeedFile != "" {
		loaded, err := sanctions.LoadFile(cfg.FeedFile)
		if err != nil {
			return fmt.Errorf("load sanctions feed: %w", err)
		}
		feed = loaded
		peps.Replace(feed.PEPs)
	}

	restored, err := eng.RestoreSanctions(ctx)
	if err != nil {
		log.Warn("sanctions snapshot not restored", "error", err)
	}
	if restored {
		log.Info("sanctions lists restored from snapshot", "peps", peps.Len())
		return nil
	}

	if feed != nil {
		for _, list := range feed.Lists {
			if _, err := eng.AddSanctionsList(ctx, list); err != nil {
				return fmt.Errorf("seed sanctions list %s: %w", list.ID, err)
			}
		}
		log.Info("sanctions feed loaded", "file", cfg.FeedFile, "lists", len(feed.Lists), "peps", len(feed.PEPs))
		return nil
	}

	if _, err := eng.AddSanctionsList(ctx, sanctions.DefaultList(requestcontext.Now(ctx))); err != nil {
		return fmt.Errorf("seed default sanctions list: %w", err)
	}
	log.Info("default sanctions list loaded", "entities", registry.Snapshot().EntityCount())
	return nil
}
