package chatRepo

import (
	"context"
	"log"
	"time"

	"brightsite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries. The
// two partial unique indexes enforce at-most-one active session per
// (identity, type) at the store level.
func (repo *MongoChatRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeOnly := bson.M{"status": models.ChatStatusActive}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"status":  models.ChatStatusActive,
				"user_id": bson.M{"$exists": true, "$type": "string"},
			}),
		},
		{
			Keys: bson.D{{Key: "guest_uid", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"status":    models.ChatStatusActive,
				"guest_uid": bson.M{"$exists": true, "$type": "string"},
			}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetPartialFilterExpression(activeOnly)},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Printf("chatRepo: failed to create indexes: %v", err)
	}
}
