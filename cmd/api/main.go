package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	discordad "tour_service/internal/adapters/discord"
	server "tour_service/internal/adapters/http_server"
	"tour_service/internal/adapters/observability"
	redisad "tour_service/internal/adapters/redis"
	"tour_service/internal/app"
	"tour_service/internal/domain"
	"tour_service/internal/shared"
	mongostore "tour_service/internal/storage/mongo"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx := context.Background()

	// datastore is optional: without it the catalog serves sample tours and writes fail with 500
	var store domain.DocumentStore
	var mongo *mongostore.Store
	if cfg.DatabaseURL != "" {
		mongo, err = mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			log.Error().Err(err).Msg("database unavailable, continuing without it")
		} else {
			if err := mongo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("ensure indexes failed")
			}
			store = mongo
			log.Info().Str("db", cfg.DatabaseName).Msg("database connection ok")
		}
	}

	var cache domain.Cache
	var rc *redisad.Cache
	if cfg.RedisAddr != "" {
		rc = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed, cache disabled")
			_ = rc.Close()
			rc = nil
		} else {
			cache = rc
		}
	}

	var notifier domain.Notifier
	if cfg.DiscordEnabled() {
		n, err := discordad.New(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Warn().Err(err).Msg("discord notifier not initialized")
		} else {
			notifier = n
		}
	}

	// http
	srv := server.New(server.Options{RateLimitRPS: cfg.RateLimitRPS, RateLimitBurst: cfg.RateLimitBurst})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Tours:     app.NewTourQueryService(store, cache, cfg.CacheTTL()),
		Bookings:  app.NewBookingService(store, notifier),
		Inquiries: app.NewInquiryService(store, notifier),
		Diag:      app.NewDiagnosticsService(store, cfg.DatabaseURL != ""),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if mongo != nil {
		if err := mongo.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}
	if rc != nil {
		_ = rc.Close()
	}
	log.Info().Msg("bye")
}
