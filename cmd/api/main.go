package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/docs"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/database"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/document"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/handler"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/middleware"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/router"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/jobs"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/logger"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/notify"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/repository"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title HandyHands Calculator API
// @version 1.0
// @description Cleaning service quotes: form configurations, price calculation, shareable quote hashes and offer submission.

// @contact.name HandyHands
// @contact.email info@handyhands.cz

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "production" {
		docs.SwaggerInfo.Host = "api.handyhands.cz"
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Pricing
	table := region.DefaultTable()
	if _, ok := table.Lookup(cfg.Region.DefaultRegion); ok {
		table.Baseline = cfg.Region.DefaultRegion
	}

	var redisClient *redis.Client
	if cfg.Region.CacheEnabled {
		redisClient = region.NewRedisClient(&cfg.Redis)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable, region lookups will not be cached", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	engine := pricing.NewEngine(
		region.NewResolver(&cfg.Region, table, redisClient, log),
		log,
		pricing.WithRegionTable(table),
		pricing.WithWinterFees(pricing.WinterFees{
			ServiceFee: cfg.Pricing.WinterServiceFee,
			CalloutFee: cfg.Pricing.WinterCalloutFee,
		}),
		pricing.WithResolveTimeout(cfg.Region.Timeout()),
	)
	location := cfg.App.Location()
	policy := calendar.NewPolicy(location, time.Now)

	// Services
	quoteService := service.NewQuoteService(form.DefaultRegistry(), engine, policy, service.QuoteOptions{
		Currency:  cfg.Pricing.Currency,
		Optimized: cfg.Pricing.OptimizedHashes,
	}, log)

	renderer, err := document.NewHTMLRenderer(document.DefaultCompany)
	if err != nil {
		return fmt.Errorf("failed to load offer template: %w", err)
	}

	var notifier notify.AdminNotifier = notify.NopNotifier{}
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
		if err != nil {
			log.Warn("Telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	submissionRepo := repository.NewSubmissionRepository(db)
	offerService := service.NewOfferService(
		quoteService,
		renderer,
		fileStorage,
		submissionRepo,
		notify.NewLogMailer(cfg.Email.From, log),
		notifier,
		cfg.Email.OfficeEmail,
		location,
		log,
	)

	// HTTP
	rt := router.NewRouter(
		cfg,
		log,
		db,
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		handler.NewFormHandler(quoteService, log),
		handler.NewQuoteHandler(quoteService, log),
		handler.NewOfferHandler(offerService, log),
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		exportJob := jobs.NewExportJob(submissionRepo, fileStorage, location, cfg.Jobs.ExportTimeoutDuration(), log)
		if err := jobs.RegisterExportJob(scheduler, exportJob, cfg.Jobs.ExportCron); err != nil {
			log.Error("Failed to register export job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with export job", zap.String("cron", cfg.Jobs.ExportCron))
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      http.TimeoutHandler(rt.Setup(), cfg.Server.RequestTimeoutDuration(), "request timed out"),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		if redisClient != nil {
			_ = redisClient.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped")
	}

	return nil
}
