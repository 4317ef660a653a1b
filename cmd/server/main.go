package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"clienthub/internal/adminauth"
	crmhandler "clienthub/internal/crm/handler"
	crmmetrics "clienthub/internal/crm/metrics"
	"clienthub/internal/crm/service"
	clientstore "clienthub/internal/crm/store/client"
	"clienthub/internal/crm/store/eventagg"
	regstore "clienthub/internal/crm/store/registration"
	"clienthub/internal/crm/tracer"
	"clienthub/internal/notify"
	"clienthub/internal/platform/config"
	"clienthub/internal/platform/database"
	"clienthub/internal/platform/httpserver"
	"clienthub/internal/platform/kafka/producer"
	"clienthub/internal/platform/logger"
	"clienthub/internal/platform/metrics"
	platformredis "clienthub/internal/platform/redis"
	"clienthub/internal/ratelimit"
	httptransport "clienthub/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthChecks := map[string]httptransport.HealthChecker{}

	// Stores: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		clients       service.ClientStore
		registrations service.RegistrationStore
		aggregates    service.EventAggregates
	)
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		clients = clientstore.NewPostgres(pool.DB())
		registrations = regstore.NewPostgres(pool.DB())
		aggregates = eventagg.NewPostgres(pool.DB())
		healthChecks["database"] = pool.Health
		log.Info("using postgres stores")
	} else {
		clients = clientstore.NewInMemory()
		registrations = regstore.NewInMemory()
		aggregates = eventagg.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Rate limit buckets: Redis when configured, per-process otherwise.
	var buckets ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		buckets = ratelimit.NewRedisBucketStore(redisClient.Client)
		healthChecks["redis"] = redisClient.Health
	}

	// Notifications: Kafka when configured, no-op otherwise.
	var publisher service.Publisher = notify.NewNoop()
	if cfg.KafkaBrokers != "" {
		prod, err := producer.New(producer.Config{Brokers: cfg.KafkaBrokers}, log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer prod.Close()

		kafkaPublisher, err := notify.NewKafka(ctx, prod)
		if err != nil {
			log.Error("failed to prepare kafka topic", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
		healthChecks["kafka"] = func(ctx context.Context) error {
			if !prod.Healthy(ctx) {
				return errors.New("kafka unreachable")
			}
			return nil
		}
	}

	transportMetrics := metrics.New()
	domainMetrics := crmmetrics.New()

	svc := service.New(clients, registrations, aggregates,
		service.WithLogger(log),
		service.WithMetrics(domainMetrics),
		service.WithTracer(tracer.NewOTel()),
		service.WithPublisher(publisher),
		service.WithStrictIdentity(cfg.StrictIdentity),
	)

	auth := adminauth.New(adminauth.Config{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		SigningKey:   cfg.AdminJWTSigningKey,
		SessionTTL:   cfg.AdminSessionTTL,
	}, log)

	limiter := ratelimit.NewMiddleware(buckets, cfg.RateLimitRequests, cfg.RateLimitWindow, log)

	crm := crmhandler.New(svc, auth, log, transportMetrics,
		crmhandler.WithRateLimit(limiter.Limit),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		CRM:          crm,
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting clienthub", "addr", cfg.Addr, "strict_identity", cfg.StrictIdentity)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
