package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tour_service/internal/adapters/observability"
	"tour_service/internal/domain"
)

// TourListKeyPrefix namespaces cached tour listings; the seeder drops every key under it.
const TourListKeyPrefix = "tours:list:"

type TourQueryService struct {
	store    domain.DocumentStore
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewTourQueryService accepts a nil store (no datastore configured) and a nil cache.
func NewTourQueryService(st domain.DocumentStore, c domain.Cache, ttl time.Duration) *TourQueryService {
	return &TourQueryService{store: st, cache: c, cacheTTL: ttl}
}

// ListTours returns up to limit tours (0 = all) in the store's natural order.
// An empty result and a failed read both yield SampleTours; callers cannot tell
// them apart, the cause is only logged and counted.
func (s *TourQueryService) ListTours(ctx context.Context, limit int) []domain.Tour {
	key := fmt.Sprintf("%s%d", TourListKeyPrefix, limit)
	if s.cache != nil {
		var cached []domain.Tour
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("tour cache read failed")
		}
		if ok && len(cached) > 0 {
			return cached
		}
	}

	tours, err := s.fetch(ctx, limit)
	switch {
	case err != nil:
		log.Warn().Err(err).Int("limit", limit).Msg("tour listing failed, serving sample tours")
		observability.ObserveFallback("error")
		return SampleTours()
	case len(tours) == 0:
		log.Info().Int("limit", limit).Msg("tour collection empty, serving sample tours")
		observability.ObserveFallback("empty")
		return SampleTours()
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, tours, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("tour cache write failed")
		}
	}
	return tours
}

func (s *TourQueryService) fetch(ctx context.Context, limit int) ([]domain.Tour, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	var tours []domain.Tour
	if err := s.store.FindMany(ctx, domain.TourCollection, nil, int64(limit), &tours); err != nil {
		return nil, err
	}
	for i := range tours {
		tours[i].Normalize()
	}
	return tours, nil
}
