package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/api"
	"github.com/WIIN2602/Farm2Hand/internal/assistant"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/config"
	"github.com/WIIN2602/Farm2Hand/internal/database"
	"github.com/WIIN2602/Farm2Hand/internal/logging"
	"github.com/WIIN2602/Farm2Hand/internal/monitoring"
	"github.com/WIIN2602/Farm2Hand/internal/orders"
	"github.com/WIIN2602/Farm2Hand/internal/playground"
)

var (
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	port        = flag.Int("port", 0, "API server port (overrides config)")
	widgetPort  = flag.Int("widget-port", 0, "Widget WebSocket server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *widgetPort > 0 {
		cfg.Server.WidgetPort = *widgetPort
	}
	if *metricsPort > 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	provider, registry, closeDB, err := initializeBackends(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	collector := monitoring.NewCollector(nil)
	backend := "seed"
	if cfg.Database.Driver != "" {
		backend = cfg.Database.Driver
	}
	collector.Monitor().SetInfo("catalog", backend)

	responder, err := initializeAssistant(cfg.Assistant, logger)
	if err != nil {
		return err
	}
	if responder != nil {
		collector.Monitor().SetInfo("assistant_provider", string(cfg.Assistant.Provider))
		responder.Start(ctx)
		defer responder.Stop()
	}

	factory := &api.SessionFactory{
		Catalog:     catalog.NewCached(provider, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL),
		Orders:      registry,
		Coordinator: checkout.NewCoordinator(nil),
		Observer:    collector,
		Limits:      cfg.Widget.Limits,
		ShippingFee: cfg.Cart.ShippingFee,
		SeedCart:    cfg.Cart.SeedDemoCart,
		Responder:   responder,
		History:     cfg.Assistant.History,
		Logger:      logger,
	}
	sessions, err := api.NewSessionStore(cfg.Server.MaxSessions, factory, collector)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	apiServer := api.NewServer(sessions, api.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		Monitor:   collector.Monitor(),
		Logger:    logger,
	})
	widgetServer := playground.NewPlaygroundServer(factory, collector, logger)

	servers := map[string]*http.Server{
		"api":    {Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: apiServer.Router},
		"widget": {Addr: fmt.Sprintf(":%d", cfg.Server.WidgetPort), Handler: widgetServer.Router()},
	}
	if cfg.Server.MetricsEnabled {
		metricsRouter := gin.New()
		metricsRouter.GET("/metrics", gin.WrapH(collector.Handler()))
		servers["metrics"] = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.MetricsPort), Handler: metricsRouter}
	}

	errCh := make(chan error, len(servers))
	for name, server := range servers {
		go func(name string, server *http.Server) {
			logger.Info("starting server", zap.String("server", name), zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s server: %w", name, err)
			}
		}(name, server)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down servers")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	for name, server := range servers {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown error", zap.String("server", name), zap.Error(err))
		}
	}
	return runErr
}

// initializeBackends opens the database when a driver is configured and falls
// back to the built-in seed data otherwise.
func initializeBackends(cfg *config.Config, logger *zap.Logger) (catalog.Provider, orders.Registry, func(), error) {
	if cfg.Database.Driver == "" {
		logger.Info("using built-in catalog")
		return catalog.NewSeedCatalog(), orders.NewStatic(orders.SeedOrders()), func() {}, nil
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	if cfg.Database.Seed {
		seed := database.CatalogSeed{
			Featured:   catalog.SeedFeaturedProducts(),
			Addable:    catalog.SeedAddableProducts(),
			Categories: catalog.SeedCategories(),
			Curated:    catalog.SeedCategoryProducts(),
		}
		if err := database.SeedCatalog(db, seed); err != nil {
			closeDB()
			return nil, nil, nil, err
		}
		if err := database.SeedOrders(db, orders.SeedOrders()); err != nil {
			closeDB()
			return nil, nil, nil, err
		}
	}
	logger.Info("using database catalog", zap.String("driver", cfg.Database.Driver))
	return database.NewCatalogStore(db), database.NewOrderStore(db), closeDB, nil
}

func initializeAssistant(cfg config.AssistantConfig, logger *zap.Logger) (*assistant.Responder, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	model, err := assistant.NewModel(assistant.ModelConfig{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("assistant enabled", zap.String("provider", string(cfg.Provider)), zap.String("model", cfg.Model))
	return assistant.NewResponder(model, assistant.ResponderConfig{
		SystemPrompt: cfg.SystemPrompt,
		Timeout:      cfg.Timeout,
		QueueSize:    cfg.QueueSize,
		History:      cfg.History,
	}, logger), nil
}
