package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"verifid/internal/artifact"
	"verifid/internal/device"
	"verifid/internal/device/sim"
	jwttoken "verifid/internal/jwt_token"
	"verifid/internal/platform/config"
	"verifid/internal/platform/httpserver"
	"verifid/internal/platform/logger"
	"verifid/internal/platform/metrics"
	"verifid/internal/platform/redis"
	"verifid/internal/progress"
	httptransport "verifid/internal/transport/http"
	"verifid/internal/upload"
	"verifid/internal/workflow"
	"verifid/pkg/platform/audit"
	auditkafka "verifid/pkg/platform/audit/publishers/kafka"
	auditmemory "verifid/pkg/platform/audit/store/memory"
	auditworker "verifid/pkg/platform/audit/worker"
)

// main wires the capture pipeline: stores fall back from durable backends
// to in-memory when the corresponding config is absent, so a bare
// `go run ./cmd/server` serves a fully working flow.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]func(context.Context) error{}

	// Redis backs the artifact cache and the progress cursor when
	// configured.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}

	var artifactStore artifact.Store = artifact.NewMemoryStore()
	var progressStore progress.Store = progress.NewMemoryStore()
	if redisClient != nil {
		artifactStore = artifact.NewRedis(redisClient.Client)
		progressStore = progress.NewRedis(redisClient.Client)
		readiness["redis"] = redisClient.Health
		defer redisClient.Close()
	}

	// Postgres, when present, takes over the progress cursor; it is the
	// one record that must survive a cache flush.
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		progressStore = progress.NewPostgres(db)
		readiness["postgres"] = db.PingContext
	}

	// The audit trail goes to Kafka when brokers are configured, else to
	// an in-process store. Either way delivery is off the request path.
	// Only the in-process store can be listed back, so the activity route
	// exists only in that wiring.
	memSink := auditmemory.New()
	var auditSink audit.Sink = memSink
	var captureOpts []httptransport.CaptureOption
	if len(cfg.Kafka.Brokers) == 0 {
		captureOpts = append(captureOpts, httptransport.WithActivityTrail(audit.NewPublisher(memSink)))
	} else {
		publisher, err := auditkafka.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		auditSink = publisher
	}
	auditQueue := auditworker.NewWorker(auditSink, 256, log)
	go func() {
		if err := auditQueue.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	uploadClient := upload.New(cfg.Upload.BaseURL, log,
		upload.WithSelfieCheckURL(cfg.Upload.SelfieCheckURL),
		upload.WithHTTPClient(&http.Client{Timeout: cfg.Upload.Timeout}),
	)
	connectivity := upload.NewProbeChecker(cfg.Upload.BaseURL)

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "verifid", "verifid-clients")
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	service := workflow.NewService(
		sim.New(),
		artifactStore,
		progress.NewSequencer(progressStore, log),
		uploadClient,
		connectivity,
		auditQueue,
		log,
		workflow.WithDetectionInterval(cfg.Capture.DetectionInterval),
		workflow.WithSetupTimeout(cfg.Capture.StreamSetupTimeout),
		workflow.WithRetryPolicy(device.RetryPolicy{
			MaxAttempts: cfg.Capture.MaxRetryAttempts,
			Backoff:     device.DefaultRetryPolicy().Backoff,
		}),
	)
	defer service.Shutdown()

	m := metrics.New()
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:    log,
		Metrics:   m,
		Capture:   httptransport.NewCaptureHandler(service, log, validator, captureOpts...),
		Readiness: readiness,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("verifid listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
