//go:build integration || !unit

package mongostore_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tour_service/internal/domain"
	mongostore "tour_service/internal/storage/mongo"
)

func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

// startMongo runs a throwaway mongod and returns a connected store.
func startMongo(t *testing.T) *mongostore.Store {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var e error
		client, e = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if e != nil {
			return e
		}
		return client.Ping(ctx, nil)
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	st := mongostore.New(client, "tours_test")
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestStore_Mongo_InsertFindAndList(t *testing.T) {
	st := startMongo(t)
	ctx := context.Background()

	if err := st.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	for i := 0; i < 5; i++ {
		tour := domain.Tour{
			Title:        fmt.Sprintf("Tour %d", i),
			Description:  "d",
			Price:        float64(100 + i),
			DurationDays: i + 1,
			Location:     "Lombok",
			Highlights:   []string{"snorkel"},
			Rating:       pfloat(4.5),
		}
		if _, err := st.InsertOne(ctx, domain.TourCollection, tour); err != nil {
			t.Fatalf("InsertOne tour %d: %v", i, err)
		}
	}

	var one []domain.Tour
	if err := st.FindMany(ctx, domain.TourCollection, nil, 1, &one); err != nil {
		t.Fatalf("FindMany limit=1: %v", err)
	}
	if len(one) != 1 {
		t.Fatalf("expected 1 tour, got %d", len(one))
	}
	if one[0].ID == "" || one[0].Title != "Tour 0" {
		t.Fatalf("unexpected first tour: %+v", one[0])
	}

	var all []domain.Tour
	if err := st.FindMany(ctx, domain.TourCollection, bson.D{}, 0, &all); err != nil {
		t.Fatalf("FindMany all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 tours, got %d", len(all))
	}

	names, err := st.ListCollectionNames(ctx)
	if err != nil {
		t.Fatalf("ListCollectionNames: %v", err)
	}
	sort.Strings(names)
	want := []string{domain.BookingCollection, domain.InquiryCollection, domain.TourCollection}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Fatalf("collections: got %v want %v", names, want)
	}
	if st.Name() != "tours_test" {
		t.Fatalf("unexpected db name %q", st.Name())
	}
}

func TestStore_Mongo_BookingRoundTrip(t *testing.T) {
	st := startMongo(t)
	ctx := context.Background()

	in := domain.Booking{
		TourID:     "665f1c2e9b1e8a0012345678",
		FullName:   "Putu Ayu",
		Email:      "ayu@example.com",
		Phone:      pstr("+62 812 0000"),
		TravelDate: "2025-08-17",
		Guests:     3,
	}
	id, err := st.InsertOne(ctx, domain.BookingCollection, in)
	if err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	if len(id) != 24 {
		t.Fatalf("expected hex object id, got %q", id)
	}

	var got []domain.Booking
	if err := st.FindMany(ctx, domain.BookingCollection, bson.D{{Key: "tour_id", Value: in.TourID}}, 0, &got); err != nil {
		t.Fatalf("FindMany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(got))
	}
	b := got[0]
	if b.FullName != in.FullName || b.Email != in.Email || b.TravelDate != in.TravelDate ||
		b.Guests != in.Guests || b.Phone == nil || *b.Phone != *in.Phone || b.Notes != nil {
		t.Fatalf("stored booking differs: %+v", b)
	}

	var raw []bson.M
	if err := st.FindMany(ctx, domain.BookingCollection, nil, 0, &raw); err != nil {
		t.Fatalf("FindMany raw: %v", err)
	}
	if _, ok := raw[0]["created_at"]; !ok {
		t.Fatalf("created_at missing: %+v", raw[0])
	}
	if v, ok := raw[0]["notes"]; !ok || v != nil {
		t.Fatalf("notes should be stored as null: %+v", raw[0])
	}
}
