package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/photo-studio/internal/audit"
	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/config"
	dbpkg "github.com/BruksfildServices01/photo-studio/internal/db"
	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/handlers"
	"github.com/BruksfildServices01/photo-studio/internal/infra/backup"
	"github.com/BruksfildServices01/photo-studio/internal/infra/events"
	"github.com/BruksfildServices01/photo-studio/internal/infra/kv"
	"github.com/BruksfildServices01/photo-studio/internal/infra/payments"
	"github.com/BruksfildServices01/photo-studio/internal/infra/repository"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	"github.com/BruksfildServices01/photo-studio/internal/routes"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
	"github.com/BruksfildServices01/photo-studio/internal/validators"
)

func main() {
	// .env é opcional
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		fatal(logger, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// PERSISTÊNCIA
	// ======================================================
	var (
		repo      domain.Repository
		users     auth.UserStore
		auditSink audit.Sink
		reader    audit.Reader
	)

	switch cfg.DataBackend {
	case "postgres":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			fatal(logger, err)
		}
		gormSink := audit.NewGormSink(db)
		repo = repository.NewStudioGormRepository(db)
		users = auth.NewGormUserStore(db)
		auditSink, reader = gormSink, gormSink
	default:
		memSink := audit.NewMemorySink(0)
		repo = repository.NewMemoryRepository()
		users = auth.NewMemoryUserStore()
		auditSink, reader = memSink, memSink
		logger.Warn("using in-memory backend, data is lost on restart")
	}

	// ======================================================
	// KV (rate limit, revogação, reset de senha)
	// ======================================================
	var store kv.Store = kv.NewMemoryStore(0)
	if cfg.RedisURL != "" {
		redisStore, err := kv.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			fatal(logger, err)
		}
		store = redisStore
	}
	defer store.Close()

	// ======================================================
	// AUDITORIA
	// ======================================================
	sinks := []audit.Sink{auditSink}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			fatal(logger, err)
		}
		publisher = p
		sinks = append(sinks, publisher)
	}

	dispatcher := audit.NewDispatcher(logger, sinks...)

	// ======================================================
	// ESTÚDIO
	// ======================================================
	studio := ucStudio.New(repo, dispatcher, validators.New(cfg.StrictPhoneValidation), logger, ucStudio.Options{
		RenameConcurrency: cfg.RenameConcurrency,
		Now:               timezone.Clock(cfg.Timezone),
	})

	// uma carga com falha não impede o boot: lastError fica exposto em /api/state
	if err := studio.Load(ctx); err != nil {
		logger.Error("initial load failed", applog.NewFields().WithOperation(applog.OpStartup).WithError(err).ToSlice()...)
	}

	authSvc := auth.NewService(users, store, auth.NewLogMailer(logger), logger, auth.Options{
		Secret:            []byte(cfg.JWTSecret),
		TokenTTL:          cfg.JWTTTL,
		AllowRegistration: cfg.AllowRegistration,
		CheckEmailDomain:  cfg.CheckEmailDomain,
		LoginLimit:        cfg.LoginLimit,
		LoginWindow:       cfg.LoginWindow,
		ResetTokenTTL:     cfg.ResetTokenTTL,
	})

	// ======================================================
	// INTEGRAÇÕES OPCIONAIS
	// ======================================================
	var paymentSvc handlers.PaymentService
	if cfg.MercadoPagoAccessToken != "" {
		svc, err := payments.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.MercadoPagoNotificationURL, studio, logger)
		if err != nil {
			fatal(logger, err)
		}
		paymentSvc = svc
	}

	var exporter handlers.Exporter
	if cfg.S3Bucket != "" {
		exporter = backup.NewS3Exporter(backup.Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, logger)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Studio:      studio,
		Auth:        authSvc,
		AuditReader: reader,
		Payments:    paymentSvc,
		Exporter:    exporter,
		Location:    timezone.Location(cfg.Timezone),
		CORSOrigins: cfg.CORSAllowedOrigins,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", applog.NewFields().WithOperation(applog.OpShutdown).WithError(err).ToSlice()...)
	}

	// drena a fila antes de fechar o canal AMQP
	dispatcher.Close()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Warn("amqp close failed", applog.FieldError, err.Error())
		}
	}

	logger.Info("server stopped")
}

func fatal(logger *applog.Logger, err error) {
	logger.Error("startup failed", applog.NewFields().WithOperation(applog.OpStartup).WithError(err).ToSlice()...)
	os.Exit(1)
}
