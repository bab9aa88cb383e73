package app_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tour_service/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu        sync.Mutex
	tours     []domain.Tour
	findErr   error
	insertErr error
	listErr   error
	names     []string
	finds     int
	docs      map[string][]any
	seq       int
}

func (f *fakeStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	if f.docs == nil {
		f.docs = map[string][]any{}
	}
	f.seq++
	f.docs[collection] = append(f.docs[collection], doc)
	return fmt.Sprintf("%024x", f.seq), nil
}

func (f *fakeStore) FindMany(ctx context.Context, collection string, filter any, limit int64, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.findErr != nil {
		return f.findErr
	}
	ts := f.tours
	if limit > 0 && int(limit) < len(ts) {
		ts = ts[:limit]
	}
	cp := make([]domain.Tour, len(ts))
	copy(cp, ts)
	*out.(*[]domain.Tour) = cp
	return nil
}

func (f *fakeStore) Name() string { return "tours" }

func (f *fakeStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	return f.names, f.listErr
}

func (f *fakeStore) count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs[collection])
}

type fakeCache struct {
	store map[string][]domain.Tour
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*[]domain.Tour) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]domain.Tour{}
	}
	c.store[key] = v.([]domain.Tour)
	c.sets++
	return nil
}

func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) (int, error) {
	n := 0
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
			n++
		}
	}
	return n, nil
}

type fakeNotifier struct {
	err       error
	bookings  []string
	inquiries []domain.Inquiry
}

func (n *fakeNotifier) NotifyBooking(ctx context.Context, id string, b domain.Booking) error {
	n.bookings = append(n.bookings, id)
	return n.err
}

func (n *fakeNotifier) NotifyInquiry(ctx context.Context, in domain.Inquiry) error {
	n.inquiries = append(n.inquiries, in)
	return n.err
}

func ptr[T any](v T) *T { return &v }
