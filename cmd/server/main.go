package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/shop-backend/internal/auth"
	"github.com/Lixing-Zhang/shop-backend/internal/basket"
	"github.com/Lixing-Zhang/shop-backend/internal/config"
	"github.com/Lixing-Zhang/shop-backend/internal/handlers"
	"github.com/Lixing-Zhang/shop-backend/internal/ledger"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/repository"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
	"github.com/Lixing-Zhang/shop-backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting shop api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	router, err := buildRouter(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// buildRouter seeds the in-memory stores and wires services and handlers.
func buildRouter(cfg *config.Config, log *slog.Logger) (http.Handler, error) {
	ctx := context.Background()

	// Auth gate
	gate, err := auth.NewGate([]auth.Account{
		{Role: models.RoleUser, Token: cfg.Auth.UserToken, Username: cfg.Auth.UserLogin.Username, Password: cfg.Auth.UserLogin.Password},
		{Role: models.RoleAdmin, Token: cfg.Auth.AdminToken, Username: cfg.Auth.AdminLogin.Username, Password: cfg.Auth.AdminLogin.Password},
	}, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.NewGate: %w", err)
	}
	if cfg.Auth.GeneratedTokens {
		log.Warn("no API tokens configured, generated tokens for this process; obtain them via POST /login")
	}

	// Catalog
	seed, err := repository.LoadSeed(cfg.Catalog.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("repository.LoadSeed: %w", err)
	}
	productRepo := repository.NewInMemoryProductRepository(seed)

	// Sales ledger with synthetic history
	generator := ledger.NewGenerator(ledger.GeneratorConfig{
		SeedCount:        cfg.Sales.SeedCount,
		SeedDays:         cfg.Sales.SeedDays,
		SeedMaxQuantity:  cfg.Sales.SeedMaxQuantity,
		BurstCount:       cfg.Sales.BurstCount,
		BurstDays:        cfg.Sales.BurstDays,
		BurstMaxQuantity: cfg.Sales.BurstMaxQuantity,
		RandomSeed:       cfg.Sales.RandomSeed,
	}, nil)
	products, err := productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetAll: %w", err)
	}
	salesLedger := ledger.New()
	salesLedger.Append(generator.History(products)...)

	log.Info("seeded in-memory stores",
		"products", len(products),
		"sales_records", salesLedger.Len(),
	)

	// Initialize services
	authService := service.NewAuthService(gate, log)
	productService := service.NewProductService(productRepo, salesLedger, generator, log)
	basketService := service.NewBasketService(basket.NewManager(productRepo), log)
	salesService := service.NewSalesService(salesLedger, service.PageLimits{
		Default: cfg.Sales.DefaultPageSize,
		Min:     cfg.Sales.MinPageSize,
		Max:     cfg.Sales.MaxPageSize,
	})

	// Initialize handlers
	h := handlers.Handlers{
		Health:   handlers.NewHealthHandler(salesLedger, log),
		Auth:     handlers.NewAuthHandler(authService, log),
		Products: handlers.NewProductHandler(productService, log),
		Basket:   handlers.NewBasketHandler(basketService, log),
		Sales:    handlers.NewSalesHandler(salesService, log),
	}

	return handlers.NewRouter(h, authService, handlers.RouterOptions{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RequestTimeout: 60 * time.Second,
	}, log), nil
}
