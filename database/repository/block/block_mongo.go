package blockRepo

import (
	"context"
	"fmt"
	"time"

	"stayloft/config"
	"stayloft/database"
	"stayloft/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlockRepo implements BlockRepository using MongoDB.
type MongoBlockRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockRepo creates a new instance of BlockRepository using MongoDB.
func NewMongoBlockRepo() BlockRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("blocks")
	repo := &MongoBlockRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBlockRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new block document.
func (r *MongoBlockRepo) Create(block *models.ExternalBlock) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, block)
	if err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

// GetByID retrieves a block by its ID, or nil if absent.
func (r *MongoBlockRepo) GetByID(id string) (*models.ExternalBlock, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var block models.ExternalBlock
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&block)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block %s: %w", id, err)
	}
	return &block, nil
}

// Delete removes a block document by its ID.
func (r *MongoBlockRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete block %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("block %s not found", id)
	}
	return nil
}

// Overlapping returns blocks for the listing intersecting the range.
func (r *MongoBlockRepo) Overlapping(listingID string, dr models.DateRange) ([]models.ExternalBlock, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"listing_id": listingID,
		"start":      bson.M{"$lt": dr.End},
		"end":        bson.M{"$gt": dr.Start},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.ExternalBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	return blocks, nil
}

// ByHost returns the manual blocks recorded by the given host.
func (r *MongoBlockRepo) ByHost(hostID string) ([]models.ExternalBlock, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var blocks []models.ExternalBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}
	return blocks, nil
}
