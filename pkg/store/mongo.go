package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wirechain/pkg/cache"
	errs "github.com/matzehuels/wirechain/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "wirechain"
	DefaultCollection = "decompositions"
)

// MongoStore keeps assets in a MongoDB collection keyed by hash (_id).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configure NewMongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and pings the primary, retrying
// transient failures.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if err := errs.ValidateURL(opts.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeUnavailable, err, "connect to mongodb")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeUnavailable, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Save upserts a.
func (s *MongoStore) Save(ctx context.Context, a Asset) error {
	if err := errs.ValidateAssetKey(a.Hash); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.Hash}, a, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save decomposition %s: %w", a.Hash, err)
	}
	return nil
}

// Load fetches the asset stored under hash.
func (s *MongoStore) Load(ctx context.Context, hash string) (Asset, error) {
	if err := errs.ValidateAssetKey(hash); err != nil {
		return Asset{}, err
	}
	var a Asset
	err := s.coll.FindOne(ctx, bson.M{"_id": hash}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Asset{}, errs.New(errs.ErrCodeNotFound, "decomposition %s not found", hash)
	}
	if err != nil {
		return Asset{}, fmt.Errorf("load decomposition %s: %w", hash, err)
	}
	return a, nil
}

// Delete removes the asset stored under hash.
func (s *MongoStore) Delete(ctx context.Context, hash string) error {
	if err := errs.ValidateAssetKey(hash); err != nil {
		return err
	}
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": hash})
	return err
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
