package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"ledger-backend/internal/auth"
	"ledger-backend/internal/cache"
	"ledger-backend/internal/config"
	"ledger-backend/internal/database"
	"ledger-backend/internal/db"
	h "ledger-backend/internal/http"
	"ledger-backend/internal/handlers"
	"ledger-backend/internal/health"
	"ledger-backend/internal/logger"
	"ledger-backend/internal/middleware"
	"ledger-backend/internal/repositories"
	"ledger-backend/internal/services"
	"ledger-backend/internal/storage"
	"ledger-backend/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the YAML config file (optional)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrateOnly := flag.Bool("migrate", false, "Apply pending migrations and exit")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	if err := logger.Init(cfg.Server.Env); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.JWT.Secret == "" && !cfg.IsProduction() {
		cfg.JWT.Secret = uuid.NewString()
		logger.Log.Warnw("[Auth] JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalw("[Config] invalid configuration", "error", err)
	}

	if err := run(cfg, *migrateOnly); err != nil {
		logger.Log.Fatalw("[Server] stopped", "error", err)
	}
}

func run(cfg *config.Config, migrateOnly bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS, database.AppliedFromPool(pool))
	if err := migrator.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if migrateOnly {
		logger.Log.Infow("[DB] migrations applied, exiting")
		return nil
	}

	// Redis is optional; without it every cache call is a no-op.
	if err := cache.Init(cfg.Redis); err != nil {
		logger.Log.Warnw("[Cache] redis unavailable, caching disabled", "error", err)
	}
	defer cache.Close()

	archive, err := storage.NewReportArchive(ctx, cfg.Storage)
	if err != nil {
		logger.Log.Warnw("[Storage] report archive disabled", "error", err)
	}

	// Repositories
	clientRepo := repositories.NewClientRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	labelRepo := repositories.NewLabelRepository(pool)
	userRepo := repositories.NewUserRepository(pool)

	jwtManager := auth.NewJWTManager(cfg.JWT)

	// Services
	authService := services.NewAuthService(userRepo, jwtManager)
	clientService := services.NewClientService(clientRepo, paymentRepo, purchaseRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo)
	labelService := services.NewLabelService(labelRepo)
	historyService := services.NewHistoryService(paymentRepo, purchaseRepo)
	summaryService := services.NewSummaryService(paymentRepo, purchaseRepo)
	reportService := services.NewClientReportService(clientRepo, paymentRepo, purchaseRepo)
	if archive != nil {
		reportService.Archive = archive
	}

	router := h.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewClientHandler(clientService),
		handlers.NewPaymentHandler(paymentService),
		handlers.NewPurchaseHandler(purchaseService),
		handlers.NewLabelHandler(labelService),
		handlers.NewHistoryHandler(historyService),
		handlers.NewSummaryHandler(summaryService),
		handlers.NewReportHandler(reportService),
		handlers.NewHealthHandler(health.NewHealthChecker(pool)),
		middleware.NewAuthMiddleware(jwtManager),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.NewCORS(cfg.Server)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("[Server] listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Infow("[Server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
