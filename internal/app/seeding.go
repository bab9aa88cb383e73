package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tour_service/internal/domain"
)

// SeedService loads tour records into the catalog.
type SeedService struct {
	store    domain.DocumentStore
	cache    domain.Cache
	validate *validator.Validate
}

type SeedResult struct {
	Inserted    int
	Invalid     int
	Failed      int
	Invalidated int
}

func NewSeedService(st domain.DocumentStore, c domain.Cache) *SeedService {
	return &SeedService{store: st, cache: c, validate: validator.New()}
}

// Prepare maps raw records to tours and drops the ones that fail validation.
func (s *SeedService) Prepare(records []map[string]any) ([]domain.Tour, int) {
	out := make([]domain.Tour, 0, len(records))
	invalid := 0
	for i, rec := range records {
		t := mapTour(rec)
		if err := s.validate.Struct(t); err != nil {
			invalid++
			log.Warn().Int("index", i).Str("title", t.Title).Err(err).Msg("skipping invalid tour record")
			continue
		}
		out = append(out, t)
	}
	return out, invalid
}

// Seed inserts tours with at most workers concurrent writes, then drops cached
// listings so the API picks up the new catalog.
func (s *SeedService) Seed(ctx context.Context, tours []domain.Tour, workers int) (SeedResult, error) {
	if s.store == nil {
		return SeedResult{}, domain.ErrStoreUnavailable
	}
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
		failed   atomic.Int64
	)

	for _, t := range tours {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return SeedResult{}, fmt.Errorf("seed aborted: %w", err)
		}
		wg.Add(1)
		go func(t domain.Tour) {
			defer wg.Done()
			defer sem.Release(1)

			id, err := s.store.InsertOne(ctx, domain.TourCollection, t)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("title", t.Title).Err(err).Msg("seed insert failed")
				return
			}
			inserted.Add(1)
			log.Debug().Str("id", id).Str("title", t.Title).Msg("seed insert ok")
		}(t)
	}
	wg.Wait()

	res := SeedResult{Inserted: int(inserted.Load()), Failed: int(failed.Load())}
	if s.cache != nil && res.Inserted > 0 {
		n, err := s.cache.DelPrefix(ctx, TourListKeyPrefix)
		if err != nil {
			log.Warn().Err(err).Msg("tour cache invalidation failed")
		}
		res.Invalidated = n
	}
	return res, nil
}
