package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo creates a new instance of CustomerRepository using MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("customers")
	repo := &MongoCustomerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCustomerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "host_id", Value: 1}, {Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert stores a customer, merging by (host, email).
func (r *MongoCustomerRepo) Upsert(customer *models.Customer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	filter := bson.M{"host_id": customer.HostID, "email": customer.Email}
	update := bson.M{
		"$set": bson.M{
			"name":  customer.Name,
			"phone": customer.Phone,
		},
		"$setOnInsert": bson.M{
			"id":         customer.ID,
			"host_id":    customer.HostID,
			"email":      customer.Email,
			"created_at": customer.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by ID, or nil if absent.
func (r *MongoCustomerRepo) GetByID(id string) (*models.Customer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &customer, nil
}

// Delete removes a customer record by its ID.
func (r *MongoCustomerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("customer %s not found", id)
	}
	return nil
}

// ByHost returns all customers belonging to the given host.
func (r *MongoCustomerRepo) ByHost(hostID string) ([]models.Customer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("failed to query customers for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}
