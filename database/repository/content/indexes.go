package contentRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates unique id and slug indexes on every content collection.
func (repo *MongoContentRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slugged := []string{CollServices, CollIndustries, CollBlogPosts}
	for _, name := range slugged {
		models := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
		if name == CollServices {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: "sub_services.id", Value: 1}}})
		}
		if _, err := repo.coll(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("contentRepo: failed to create indexes on %s: %v", name, err)
		}
	}

	idOnly := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := repo.coll(CollTestimonials).Indexes().CreateMany(ctx, idOnly); err != nil {
		log.Printf("contentRepo: failed to create indexes on %s: %v", CollTestimonials, err)
	}
}
