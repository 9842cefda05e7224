package bookingRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoBookingRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Partial index on payment_id: guest bookings without a payment carry none.
	paymentIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "payment_id", Value: 1}},
		Options: options.Index().SetPartialFilterExpression(bson.M{
			"payment_id": bson.M{"$exists": true, "$type": "string"},
		}),
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "resource_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		paymentIdx,
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Printf("bookingRepo: failed to create indexes: %v", err)
	}
}
