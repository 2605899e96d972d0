package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recruitfunnel/site/config"
	"recruitfunnel/site/database"
	"recruitfunnel/site/handlers"
	"recruitfunnel/site/landing"
	"recruitfunnel/site/middleware"
	"recruitfunnel/site/store"
	"recruitfunnel/site/tracking"
	"recruitfunnel/site/utils"
	"recruitfunnel/site/visitor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Dev())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("site stopped", zap.Error(err))
	}
	logger.Info("Server exiting.")
}

func run(cfg config.Config, logger *zap.Logger) error {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL (users, applications) ---
	dbClient, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("initialize PostgreSQL: %w", err)
	}
	defer dbClient.Close()
	if err := dbClient.EnsurePostgresSchema(ctx); err != nil {
		return err
	}

	// --- ClickHouse (visitor events) ---
	chClient, err := database.NewClickHouseDB(ctx, database.ClickHouseOptions{
		Host:     cfg.ClickHouseHost,
		Port:     cfg.ClickHouseNativePort,
		Database: cfg.ClickHouseDBName,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize ClickHouse: %w", err)
	}
	defer chClient.Close()
	if err := chClient.EnsureClickHouseSchema(ctx); err != nil {
		return err
	}

	tokens, err := utils.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	if err != nil {
		return err
	}
	templates, err := landing.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	// --- Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	applicationStore := store.NewApplicationStore(dbClient.DB)
	visitorStore := store.NewVisitorStore(chClient, logger)

	// --- Handlers ---
	events := tracking.NewTracker(logger.Named("events"), cfg.Dev())
	secure := cfg.GinMode == gin.ReleaseMode
	router, err := handlers.NewRouter(handlers.RouterConfig{
		Logger:         logger,
		Reporter:       middleware.ZapReporter{Logger: logger.Named("errors")},
		Templates:      templates,
		FEOrigin:       cfg.FEOrigin,
		SecureCookies:  secure,
		Tokens:         tokens,
		TrustedProxies: cfg.TrustedProxies,
		Pages:          handlers.NewPageHandlers(visitor.NewHTTPSender(cfg.VisitorEndpoint()), events),
		Visitors:       handlers.NewVisitorHandlers(visitorStore, logger),
		Events:         handlers.NewEventHandlers(events),
		Applications:   handlers.NewApplicationHandlers(applicationStore, events, logger),
		Auth:           handlers.NewAuthHandlers(userStore, tokens, secure, logger),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("site listening", zap.String("addr", srv.Addr), zap.String("visitor_endpoint", cfg.VisitorEndpoint()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
