package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// cartsCollection коллекция корзин configurator-service
const cartsCollection = "carts"

type cartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{collection: db.Collection(cartsCollection)}
}

// DeleteStale удаляет корзины по индексу updated_at
func (r *cartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale carts: %w", err)
	}
	return res.DeletedCount, nil
}

