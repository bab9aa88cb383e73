package app_test

import (
	"context"
	"errors"
	"testing"

	"tour_service/internal/app"
	"tour_service/internal/domain"
)

func TestSeedService_PrepareDropsInvalid(t *testing.T) {
	svc := app.NewSeedService(&fakeStore{}, nil)
	records := []map[string]any{
		{"title": "Ijen Blue Fire", "description": "Night hike", "price": 89.0, "days": 1.0, "location": "East Java"},
		{"title": "No price", "description": "x", "days": 2.0, "location": "Bali"},
		{"title": "Zero days", "description": "x", "price": 10.0, "days": 0.0, "location": "Bali"},
		{"title": "Bad rating", "description": "x", "price": 10.0, "days": 2.0, "location": "Bali", "rating": 7.0},
	}
	tours, invalid := svc.Prepare(records)
	if len(tours) != 1 || invalid != 3 {
		t.Fatalf("expected 1 valid / 3 invalid, got %d / %d", len(tours), invalid)
	}
	if tours[0].Title != "Ijen Blue Fire" {
		t.Fatalf("unexpected tour: %+v", tours[0])
	}
}

func TestSeedService_SeedInsertsAndInvalidates(t *testing.T) {
	st := &fakeStore{}
	cache := &fakeCache{store: map[string][]domain.Tour{
		app.TourListKeyPrefix + "20": app.SampleTours(),
		app.TourListKeyPrefix + "1":  app.SampleTours()[:1],
	}}
	svc := app.NewSeedService(st, cache)

	tours := catalog(7)
	res, err := svc.Seed(context.Background(), tours, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Inserted != 7 || res.Failed != 0 || st.count(domain.TourCollection) != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Invalidated != 2 || len(cache.store) != 0 {
		t.Fatalf("expected cached listings dropped, result %+v cache %v", res, cache.store)
	}
}

func TestSeedService_CountsFailures(t *testing.T) {
	st := &fakeStore{insertErr: errors.New("disk full")}
	res, err := app.NewSeedService(st, nil).Seed(context.Background(), catalog(4), 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Inserted != 0 || res.Failed != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSeedService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := app.NewSeedService(&fakeStore{}, nil).Seed(ctx, catalog(3), 1); err == nil {
		t.Fatalf("expected error on canceled context")
	}
}
