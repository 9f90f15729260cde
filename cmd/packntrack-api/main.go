// README: Entry point; loads config, wires the LLM provider and planner, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"packntrack/internal/ai"
	"packntrack/internal/config"
	httptransport "packntrack/internal/http"
	"packntrack/internal/logger"
	"packntrack/internal/maps"
	"packntrack/internal/tracing"
	"packntrack/internal/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint, zl)
	if err != nil {
		zl.Fatal("tracing init", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zl.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	provider := ai.NewProvider(cfg.AI)
	if !provider.HasCredentials() {
		zl.Warn("no API key configured; plan requests will fail until it is set", zap.String("provider", provider.Name()))
	}

	opts := trip.Options{
		UpstreamTimeout: cfg.AI.UpstreamTimeout,
		LenientJSON:     cfg.Plan.LenientJSON,
		ValidatePlan:    cfg.Plan.ValidatePlan,
	}
	if cfg.Plan.GeocodeMissing {
		opts.Geocoder = maps.NewGeocodeService(cfg.Maps.APIKey)
	}
	planner := trip.NewPlanner(provider, zl, opts)

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:     planner,
		Logger:      zl,
		ServiceName: cfg.Tracing.ServiceName,
	})

	if cfg.HTTP.PprofAddr != "" {
		pprofServer := httptransport.NewServer(cfg.HTTP.PprofAddr, httptransport.NewPprofRouter(), zl.Named("pprof"))
		go func() {
			if err := pprofServer.Run(ctx); err != nil {
				zl.Error("pprof server", zap.Error(err))
			}
		}()
	}

	server := httptransport.NewServer(cfg.HTTP.Addr, router, zl)
	if err := server.Run(ctx); err != nil {
		zl.Fatal("http server", zap.Error(err))
	}
}
