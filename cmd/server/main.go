package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront_api/internal/config"
	"storefront_api/internal/handler"
	"storefront_api/internal/logger"
	"storefront_api/internal/repository"
	"storefront_api/internal/service"
	"storefront_api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log := logger.Init(logger.Options{})
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run() error {
	// Load .env file
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration ---
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:             cfg.LogLevel,
		Pretty:            cfg.LogPretty,
		QuietLookupMisses: cfg.IsTest(),
	})
	if envErr != nil {
		log.Debug().Msg("no .env file loaded, relying on environment variables")
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set: logins will fail and every token will be rejected")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, utils.TokenTTL)
	hasher := utils.BcryptHasher{}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool, hasher)
	productRepo := repository.NewProductRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	orderItemRepo := repository.NewOrderItemRepository(dbPool)

	// --- Initialize Services ---
	services := handler.Services{
		Auth:     service.NewAuthService(userRepo, hasher, tokens),
		Users:    service.NewUserService(userRepo),
		Products: service.NewProductService(productRepo),
		Orders:   service.NewOrderService(orderRepo, orderItemRepo),
	}

	router := handler.NewRouter(services, tokens, dbPool)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exiting")
	return nil
}
