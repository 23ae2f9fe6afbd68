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
	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/config"
	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/infrastructure/repository"
	"github.com/anviet/tuition-api/internal/infrastructure/storage"
	"github.com/anviet/tuition-api/internal/presentation/http/handler"
	"github.com/anviet/tuition-api/internal/presentation/http/middleware"
	"github.com/anviet/tuition-api/internal/presentation/http/routes"
	"github.com/anviet/tuition-api/internal/scheduler"
	"github.com/anviet/tuition-api/pkg/logger"
	"github.com/anviet/tuition-api/pkg/printer"
	"github.com/anviet/tuition-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	baseLogger := logger.Must(logger.New(cfg.App.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Set Gin mode based on environment
	if !cfg.App.Debug || cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := cfg.App.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Open keyed storage
	store, closeStore, err := storage.Open(context.Background(), cfg, logger.Named(baseLogger, "storage"))
	if err != nil {
		baseLogger.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	ids, err := utils.NewIDGenerator(cfg.App.IDStrategy, now)
	if err != nil {
		baseLogger.Fatal("failed to init id generator", zap.Error(err))
	}

	// Initialize repositories
	historyRepo := repository.NewHistoryRepository(store, ids, logger.Named(baseLogger, "repo.history"))
	draftRepo := repository.NewDraftRepository(store, logger.Named(baseLogger, "repo.draft"))

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		baseLogger.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	layout := billing.ReceiptLayout{
		Header: entity.ReceiptHeader{
			CenterName: cfg.Center.Name,
			Address:    cfg.Center.Address,
			Phone:      cfg.Center.Phone,
			Slogan:     cfg.Center.Slogan,
			LogoURL:    cfg.Center.LogoURL,
		},
		Payment: entity.PaymentInfo{
			BankName:      cfg.Center.BankName,
			AccountNumber: cfg.Center.AccountNumber,
			AccountHolder: cfg.Center.AccountHolder,
			QRImageURL:    cfg.Center.QRImageURL,
		},
		IssuerDepartment: cfg.Center.Department,
	}

	// Initialize services
	jwtManager := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authService := service.NewAuthService(cfg.Auth.Passcode, cfg.Auth.PasscodeHash, jwtManager, logger.Named(baseLogger, "svc.auth"))
	receiptService := service.NewReceiptService(historyRepo, thermalPrinter, cfg.Printer.Type, cfg.Printer.CharWidth, layout, logger.Named(baseLogger, "svc.receipt"))
	tuitionService := service.NewTuitionService(historyRepo, draftRepo, receiptService, now, logger.Named(baseLogger, "svc.tuition"))
	exportService := service.NewExportService(historyRepo, store, cfg.Storage.Path, now, logger.Named(baseLogger, "svc.export"))

	// Initialize scheduler
	sched := scheduler.NewScheduler(cfg.Backup.Cron, loc, exportService, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("invalid backup schedule", zap.String("cron", cfg.Backup.Cron), zap.Error(err))
	}
	defer sched.Stop()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Tuition: handler.NewTuitionHandler(tuitionService),
		Draft:   handler.NewDraftHandler(tuitionService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Export:  handler.NewExportHandler(exportService),
	}

	duration := cfg.RateLimit.Duration
	if duration <= 0 {
		duration = 60
	}
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		RateLimiter: rateLimiter,
		Logger:      logger.Named(baseLogger, "http"),
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
