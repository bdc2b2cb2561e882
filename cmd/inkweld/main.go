package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/inkweld/inkweld/backend/go-services/internal/assistant"
	"github.com/inkweld/inkweld/backend/go-services/internal/config"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/handler"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/slot"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/store"
	"github.com/inkweld/inkweld/backend/go-services/internal/export"
	"github.com/inkweld/inkweld/backend/go-services/pkg/logger"
	"github.com/inkweld/inkweld/backend/go-services/pkg/metrics"
	"github.com/inkweld/inkweld/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Sugar.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	// storage never blocks startup: unreachable backends fall back to memory
	// inside slot.Open, and a corrupt snapshot degrades to an empty
	// collection inside Load.
	s := slot.Open(ctx, cfg.Storage)
	st := store.New(s)
	st.Load(ctx)

	aiClient := assistant.NewClient(cfg.Assistant)
	if !aiClient.Available() {
		logger.Sugar.Info("assistant credential not set; assistant endpoints will report unavailable")
	}

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "healthy")
	})

	handler.RegisterDocumentRoutes(r, st, export.NewRegistry())
	handler.RegisterAssistantRoutes(r, aiClient)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Sugar.Infof("inkweld document service listening on %s (slot backend: %s)", addr, s.Backend())
	if err := r.Run(addr); err != nil {
		logger.Sugar.Fatalf("server exited: %v", err)
	}
}
