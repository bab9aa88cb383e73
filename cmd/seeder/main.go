package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"tour_service/internal/adapters/feed"
	"tour_service/internal/adapters/observability"
	redisad "tour_service/internal/adapters/redis"
	"tour_service/internal/app"
	"tour_service/internal/domain"
	"tour_service/internal/shared"
	mongostore "tour_service/internal/storage/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required for seeding")
	}
	if (cfg.SeedFile == "") == (cfg.SeedURL == "") {
		log.Fatal().Msg("set exactly one of SEED_FILE or SEED_URL")
	}

	log.Info().
		Str("file", cfg.SeedFile).
		Str("url", cfg.SeedURL).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	src, err := source(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("seed source")
	}
	records, err := src.FetchTours(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed records")
	}

	store, err := mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer func() { _ = store.Close(context.Background()) }()
	log.Info().Msg("db ping ok")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	svc := app.NewSeedService(store, cache)
	tours, invalid := svc.Prepare(records)
	res, err := svc.Seed(ctx, tours, cfg.SeedWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("records", len(records)).
		Int("invalid", invalid).
		Int("inserted", res.Inserted).
		Int("failed", res.Failed).
		Int("cache_keys_dropped", res.Invalidated).
		Msg("seeding completed")
}

// fileFeed reads a local JSON array of tour records.
type fileFeed string

func (f fileFeed) FetchTours(context.Context) ([]map[string]any, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of tours: %w", string(f), err)
	}
	return records, nil
}

func source(cfg shared.Config) (domain.TourFeed, error) {
	if cfg.SeedURL != "" {
		return feed.New(cfg.SeedURL, cfg.SeedAPIKey, 5)
	}
	return fileFeed(cfg.SeedFile), nil
}
