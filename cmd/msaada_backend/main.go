package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/adapters/mailer"
	"github.com/msaadaplus/msaada_backend/internal/adapters/mpesa"
	"github.com/msaadaplus/msaada_backend/internal/adapters/storage"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	"github.com/msaadaplus/msaada_backend/internal/core/services"
	"github.com/msaadaplus/msaada_backend/internal/handlers"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
	"github.com/msaadaplus/msaada_backend/internal/repositories/database/pgsql"
	"github.com/msaadaplus/msaada_backend/internal/utils"
	"github.com/msaadaplus/msaada_backend/pkg/database"
	"github.com/spf13/cobra"
)

// @title Msaada Backend API
// @version 1.0
// @description Donation platform connecting donors with registered charities. Payments are collected through M-Pesa STK push.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "msaada",
		Short:         "Msaada donation platform backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(migrateCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !skipMigrations {
				if err := runMigrations(cfg, logger, directionUp); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Start without applying pending migrations")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, database.PoolOptions{
		URL:             cfg.DatabaseURL,
		MaxConns:        cfg.DBPool.MaxConns,
		MinConns:        cfg.DBPool.MinConns,
		MaxConnIdleTime: cfg.DBPool.MaxConnIdleTime,
		ConnectTimeout:  cfg.DBPool.ConnectTimeout,
		Ping:            cfg.EnableDBCheck,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	images, err := storage.NewS3ImageStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	outbound := clients.ClientProvider{
		Payments: mpesa.NewClient(cfg.Mpesa),
		Notifier: mailer.New(cfg.Mail),
		Images:   images,
	}
	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), outbound,
		services.WithEventTracker(analytics))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, analytics); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		errCh <- r.Run(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to run: %w", err)
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		return nil
	}
}
