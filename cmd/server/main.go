package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"fastfood/internal/api"
	"fastfood/internal/config"
	"fastfood/internal/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	store := engine.NewStore(cfg.DatasetURL, &http.Client{Timeout: cfg.FetchTimeout}, logger)

	h := api.NewHandler(store, logger, cfg.MapMaxPoints)
	h.RegisterRoutes(e)

	// Fetch in the background so the API is live immediately; data
	// routes answer 503 until the snapshot lands.
	go func() {
		t0 := time.Now()
		if _, err := store.Load(context.Background()); err != nil {
			logger.Error("initial dataset load failed", zap.Error(err))
			return
		}
		logger.Info("api fully ready", zap.Duration("elapsed", time.Since(t0)))
	}()

	logger.Info("server ready, dataset loading in background",
		zap.String("addr", cfg.ListenAddr))
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
