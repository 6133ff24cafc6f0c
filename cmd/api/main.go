package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/application/service"
	"github.com/tewankitchen/pos-api/internal/config"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	domainRepo "github.com/tewankitchen/pos-api/internal/domain/repository"
	"github.com/tewankitchen/pos-api/internal/infrastructure/database"
	"github.com/tewankitchen/pos-api/internal/infrastructure/messaging"
	"github.com/tewankitchen/pos-api/internal/infrastructure/notifier"
	"github.com/tewankitchen/pos-api/internal/infrastructure/repository"
	"github.com/tewankitchen/pos-api/internal/presentation/http/handler"
	"github.com/tewankitchen/pos-api/internal/presentation/http/middleware"
	"github.com/tewankitchen/pos-api/internal/presentation/http/routes"
	"github.com/tewankitchen/pos-api/pkg/logger"
	"github.com/tewankitchen/pos-api/pkg/money"
	"github.com/tewankitchen/pos-api/pkg/printer"
	"github.com/tewankitchen/pos-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	node, err := utils.NewIDNode(cfg.POS.NodeID)
	if err != nil {
		zl.Fatal("invalid node id", zap.Int64("node_id", cfg.POS.NodeID), zap.Error(err))
	}
	loc := cfg.POS.Location()
	health := map[string]handler.HealthCheck{}

	// Idempotency keys live in Redis when configured, in memory otherwise
	idempotencyRepo := repository.NewMemoryIdempotencyRepository()
	if cfg.Redis.Addr != "" {
		rdb, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer rdb.Close()
		idempotencyRepo = repository.NewRedisIdempotencyRepository(rdb, cfg.Redis.Prefix)
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		zl.Info("idempotency store: redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Recording sinks
	var sinks []notifier.Sink
	if cfg.Sync.ArchiveEnabled && cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zl)
		if err != nil {
			zl.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := database.AutoMigrate(db, zl); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
		sinks = append(sinks, notifier.NewArchiveSink(repository.NewTransactionArchiveRepository(db)))
		health["postgres"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if cfg.Sync.SheetsURL != "" {
		sinks = append(sinks, notifier.NewSheetsSink(cfg.Sync.SheetsURL, cfg.Sync.SheetsToken))
	}
	if cfg.Sync.AMQPURL != "" {
		mq, err := messaging.Dial(cfg.Sync.AMQPURL, cfg.Sync.AMQPExchange)
		if err != nil {
			// The broker is optional; payments never wait on it.
			zl.Warn("amqp sink disabled", zap.Error(err))
		} else {
			defer mq.Close()
			sinks = append(sinks, notifier.NewAMQPSink(mq, cfg.Sync.AMQPRoutingKey))
			health["amqp"] = func(context.Context) error { return mq.Ping() }
		}
	}

	dispatcher := notifier.NewDispatcher(notifier.DispatcherConfig{
		QueueSize:     cfg.Sync.QueueSize,
		Timeout:       cfg.Sync.Timeout,
		RatePerSecond: cfg.Sync.RatePerSecond,
		Burst:         cfg.Sync.Burst,
		WarningsKept:  cfg.Sync.WarningsKept,
	}, zl, sinks...)
	zl.Info("recording sinks started", zap.Strings("sinks", dispatcher.SinkNames()))

	// Domain
	tableRepo := repository.NewTableRepository(cfg.POS.TableCount)
	ledgerRepo := repository.NewLedgerRepository()
	baseRates := money.NewRates(cfg.POS.ServiceChargePercent, cfg.POS.TaxPercent, 0)
	if !baseRates.ServiceChargePercent.Equal(decimal.NewFromFloat(cfg.POS.ServiceChargePercent)) ||
		!baseRates.TaxPercent.Equal(decimal.NewFromFloat(cfg.POS.TaxPercent)) {
		zl.Warn("configured rates clamped to [0,100]",
			zap.Float64("service_charge_percent", cfg.POS.ServiceChargePercent),
			zap.Float64("tax_percent", cfg.POS.TaxPercent),
			zap.String("service_charge_used", baseRates.ServiceChargePercent.String()),
			zap.String("tax_used", baseRates.TaxPercent.String()),
		)
	}

	menuService := service.NewMenuService(entity.DefaultMenu())
	tableService := service.NewTableService(tableRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, tableRepo, node, dispatcher, zl)
	checkouts := service.NewCheckoutRegistry(menuService, tableService, ledgerService, baseRates)
	reportService := service.NewReportService(ledgerService, loc)
	exportService := service.NewExportService(reportService, ledgerService)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authService := service.NewAuthService(cfg.Auth.PinHash, jwtManager)
	if !authService.Enabled() {
		zl.Warn("terminal login disabled, every request acts for the default terminal")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zl.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()
	printerService := service.NewPrinterService(thermalPrinter, ledgerService, entity.ReceiptHeader{
		StoreName: cfg.POS.StoreName,
		Address:   cfg.POS.StoreAddress,
		Phone:     cfg.POS.StorePhone,
		TaxID:     cfg.POS.TaxID,
	}, cfg.Printer.Type, cfg.Printer.Width, loc, zl)

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(cfg.App.Name, health),
		Auth:        handler.NewAuthHandler(authService, zl),
		Menu:        handler.NewMenuHandler(menuService),
		Table:       handler.NewTableHandler(tableService, checkouts, zl),
		Checkout:    handler.NewCheckoutHandler(checkouts, zl),
		Transaction: handler.NewTransactionHandler(ledgerService, cfg.POS.RecentLimit, zl),
		Report:      handler.NewReportHandler(reportService, exportService, cfg.POS.TopItems, zl),
		Sync:        handler.NewSyncHandler(dispatcher),
		Printer:     handler.NewPrinterHandler(printerService, checkouts, zl),
	}

	rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		AuthEnabled:     authService.Enabled(),
		Cfg:             cfg,
		Log:             zl,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go purgeIdempotencyKeys(ctx, idempotencyRepo, zl)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("name", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		zl.Warn("recording queue not drained", zap.Error(err))
	}
}

// purgeIdempotencyKeys drops expired keys every hour until ctx ends.
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("idempotency purge failed", zap.Error(err))
			}
		}
	}
}
