package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplyonchain/tracker/internal/model"
)

const productCollection = "products"

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	col    *mongo.Collection
	client *mongo.Client
}

var _ Store = (*MongoStore)(nil)

// Connect dials MongoDB and prepares the products collection. The caller
// must eventually call Close.
func Connect(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	col := client.Database(database).Collection(productCollection)

	// transactionHash is the primary correlation key toward scan payloads.
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "transactionHash", Value: 1}}},
		{Keys: bson.D{{Key: "batchId", Value: 1}}},
		{Keys: bson.D{{Key: "manufacturer", Value: 1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &MongoStore{col: col, client: client}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Create inserts a new metadata document.
func (s *MongoStore) Create(ctx context.Context, record *model.MetadataRecord) (*model.MetadataRecord, error) {
	res, err := s.col.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to insert metadata record: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return record, nil
}

// FindByTransactionHash returns the document created by the given ledger
// transaction, or ErrNotFound.
func (s *MongoStore) FindByTransactionHash(ctx context.Context, hash string) (*model.MetadataRecord, error) {
	var record model.MetadataRecord
	err := s.col.FindOne(ctx, bson.M{"transactionHash": hash}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find metadata record: %w", err)
	}
	return &record, nil
}

// FindByBatchID returns the document describing the given batch, or
// ErrNotFound. Batch ids are unique per product on the ledger side.
func (s *MongoStore) FindByBatchID(ctx context.Context, batchID string) (*model.MetadataRecord, error) {
	var record model.MetadataRecord
	err := s.col.FindOne(ctx, bson.M{"batchId": batchID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find metadata record: %w", err)
	}
	return &record, nil
}

// FindByManufacturer returns every document the address created, newest first.
func (s *MongoStore) FindByManufacturer(ctx context.Context, address string) ([]*model.MetadataRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"manufacturer": address}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*model.MetadataRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode metadata records: %w", err)
	}
	return records, nil
}
