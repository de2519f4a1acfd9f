// README: Entry point; loads config, wires the plan pipeline, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tripplan/internal/ai"
	"tripplan/internal/config"
	httptransport "tripplan/internal/http"
	"tripplan/internal/infra"
	"tripplan/internal/maps"
	"tripplan/internal/modules/plan"
	"tripplan/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.Env)
	if cfg.Env != "dev" && cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a credential the server still starts; every plan request
	// answers with ConfigurationError.
	var (
		gen      plan.Generator
		provider = cfg.AI.Provider
	)
	if cfg.AI.APIKey() != "" {
		p, err := ai.New(ctx, cfg.AI.Settings())
		if err != nil {
			logger.Fatal().Err(err).Str("provider", cfg.AI.Provider).Msg("generation backend init")
		}
		defer p.Close()
		gen, provider = p, p.Name()
	} else {
		logger.Warn().Str("provider", cfg.AI.Provider).Msg("no generation credential configured")
	}

	lang := plan.ParseLanguage(cfg.Lang)
	planSvc := plan.NewService(gen, plan.Options{
		Credential: cfg.AI.APIKey(),
		Provider:   provider,
		Language:   lang,
		Logger:     logger,
	})

	var geocoder service.Geocoder
	if cfg.Geo.MapsKey != "" {
		g, err := maps.NewGeocodeService(cfg.Geo.MapsKey, string(lang))
		if err != nil {
			logger.Warn().Err(err).Msg("geo audit disabled")
		} else {
			geocoder = g
		}
	}
	planner := service.NewTripPlanner(planSvc, geocoder, cfg.Geo.RadiusKm, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:  planner,
		Language: lang,
		Logger:   logger,
		Registry: infra.InitRegistry(),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.HTTP.Addr).Str("provider", provider).Str("lang", string(lang)).Msg("http server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("http server")
	}
	logger.Info().Msg("http server stopped")
}
