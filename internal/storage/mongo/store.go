package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tour_service/internal/adapters/observability"
	"tour_service/internal/domain"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Open connects to uri and pings the primary. Both steps share a 10s budget.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return New(client, dbName), nil
}

func New(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName), now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *Store) Name() string { return s.db.Name() }

func (s *Store) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	start := time.Now()
	d, err := stamp(doc, s.now())
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", collection, err)
	}
	res, err := s.db.Collection(collection).InsertOne(ctx, d)
	observability.ObserveDatastore(collection, "insert", err, time.Since(start))
	if err != nil {
		return "", err
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (s *Store) FindMany(ctx context.Context, collection string, filter any, limit int64, out any) error {
	start := time.Now()
	err := s.findMany(ctx, collection, filter, limit, out)
	observability.ObserveDatastore(collection, "find", err, time.Since(start))
	return err
}

func (s *Store) findMany(ctx context.Context, collection string, filter any, limit int64, out any) error {
	if filter == nil {
		filter = bson.D{}
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	observability.ObserveDatastore("*", "list_collections", err, time.Since(start))
	return names, err
}

// EnsureIndexes creates the lookup indexes used by operators on the write-only
// collections. Safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	idx := map[string][]mongo.IndexModel{
		domain.BookingCollection: {
			{Keys: bson.D{{Key: "tour_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		domain.InquiryCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}
	for coll, models := range idx {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// stamp converts doc to an ordered document and sets created_at/updated_at.
func stamp(doc any, now time.Time) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	out := make(bson.D, 0, len(d)+2)
	for _, e := range d {
		if e.Key == "created_at" || e.Key == "updated_at" {
			continue
		}
		out = append(out, e)
	}
	return append(out, bson.E{Key: "created_at", Value: now}, bson.E{Key: "updated_at", Value: now}), nil
}
