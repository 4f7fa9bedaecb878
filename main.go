package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/naresh-2026/warehouseProducts/internal/api"
	"github.com/naresh-2026/warehouseProducts/internal/cache"
	"github.com/naresh-2026/warehouseProducts/internal/config"
	"github.com/naresh-2026/warehouseProducts/internal/database"
	"github.com/naresh-2026/warehouseProducts/internal/logger"
	"github.com/naresh-2026/warehouseProducts/internal/monitoring"
	"github.com/naresh-2026/warehouseProducts/internal/services"
	"github.com/naresh-2026/warehouseProducts/internal/store"
	"github.com/naresh-2026/warehouseProducts/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Optional recent-listing cache
	var listingCache *cache.Cache
	if cfg.RedisAddr != "" {
		listingCache, err = cache.New(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		defer listingCache.Close()
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	productStore := store.NewSQLProductStore(db)
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db, activityService)
	productService := services.NewProductService(productStore, activityService, hub, listingCache, cfg.RecentLimit)

	// Set up and run the background activity sweeper
	sweeper, err := monitoring.NewSweeper(activityService, cfg.ActivitySweepSpec, cfg.ActivityRetention)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.ActivitySweepSpec).Msg("Invalid activity sweep schedule")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		DB:              db,
		Hub:             hub,
		UserService:     userService,
		ProductService:  productService,
		ActivityService: activityService,
		AllowedOrigins:  cfg.AllowedOrigins(),
		StaticDir:       cfg.StaticDir,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
