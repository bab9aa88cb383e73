package domain

import (
	"context"
	"errors"
)

var (
	ErrStoreUnavailable = errors.New("database not available")
	ErrNotFound         = errors.New("not found")
)

// DocumentStore hides the datastore behind insert-one / find-many.
type DocumentStore interface {
	// InsertOne stores doc and returns the generated identifier.
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	// FindMany decodes up to limit documents matching filter into out (a pointer
	// to a slice). A nil filter matches everything; limit 0 means no limit.
	FindMany(ctx context.Context, collection string, filter any, limit int64, out any) error

	Name() string
	ListCollectionNames(ctx context.Context) ([]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	DelPrefix(ctx context.Context, prefix string) (int, error)
}

type Notifier interface {
	NotifyBooking(ctx context.Context, id string, b Booking) error
	NotifyInquiry(ctx context.Context, in Inquiry) error
}

// TourFeed is a remote source of loosely-typed tour records used for seeding.
type TourFeed interface {
	FetchTours(ctx context.Context) ([]map[string]any, error)
}
