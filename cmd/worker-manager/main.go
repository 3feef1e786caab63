// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobseeker-scoring/internal/common/camunda"
	"jobseeker-scoring/internal/common/config"
	"jobseeker-scoring/internal/common/database"
	"jobseeker-scoring/internal/common/logger"
	"jobseeker-scoring/internal/common/observability"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/internal/engine"
	"jobseeker-scoring/internal/store/users"
	"jobseeker-scoring/pkg/registry"

	calc "jobseeker-scoring/internal/workers/scoring/calculate-jobseeker-score"
	elig "jobseeker-scoring/internal/workers/scoring/check-job-eligibility"
	notify "jobseeker-scoring/internal/workers/scoring/notify-score-change"
	update "jobseeker-scoring/internal/workers/scoring/update-jobseeker-score"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.Build(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	if err != nil {
		zapLog.Warn("observability exporters unavailable", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	backends := []database.Pinger{zeebe, pg}

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	if cfg.UsesRedis() {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		backends = append(backends, rdb)
		zapLog.Info("Redis connected successfully")
	}

	// --- Init Elasticsearch with retry ---
	var es *database.ElasticsearchClient
	if cfg.UsesElasticsearch() {
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		backends = append(backends, es)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Stores and engine ---
	scoreStore, err := buildScoreStore(ctx, cfg, pg, rdb, log)
	if err != nil {
		zapLog.Fatal("score store init failed", zap.Error(err))
	}
	userStore := users.NewPostgresStore(pg.DB)
	collab := buildCollaborators(cfg, pg, es, log)

	eng := engine.New(userStore, scoreStore, collab, log)

	// --- Registry and input validation ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err), zap.String("path", cfg.Registry.Path))
	}
	validator, err := validation.NewSchemaValidator(reg)
	if err != nil {
		zapLog.Fatal("schema compilation failed", zap.Error(err))
	}

	email, sms, err := buildSenders(ctx, cfg)
	if err != nil {
		zapLog.Fatal("notification clients init failed", zap.Error(err))
	}

	// --- Register workers ---
	manager := camunda.NewWorkerManager(zeebe.GetClient(), log).WithRecorder(obs)

	manager.Start(calc.TaskType, config.GetWorkerConfig(cfg, calc.TaskType),
		calc.NewHandler(calc.LoadConfig(cfg), eng, validator, log))

	manager.Start(update.TaskType, config.GetWorkerConfig(cfg, update.TaskType),
		update.NewHandler(update.LoadConfig(cfg), eng, validator, log))

	manager.Start(elig.TaskType, config.GetWorkerConfig(cfg, elig.TaskType),
		elig.NewHandler(elig.LoadConfig(cfg), eng, validator, log))

	manager.Start(notify.TaskType, config.GetWorkerConfig(cfg, notify.TaskType),
		notify.NewHandler(notify.LoadConfig(cfg), userStore, email, sms, validator, log))

	zapLog.Info("Workers registered", zap.Strings("taskTypes", manager.TaskTypes()))

	// --- Health, readiness and metrics ---
	srv := newServer(cfg.Observability.MetricsAddress, database.NewChecker(5*time.Second, backends...), log)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("Health/Metrics server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}
