package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"brightsite/database"
	"brightsite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository backed by MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo returns a repository over the "availability_windows" collection.
func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	repo := &MongoAvailabilityRepo{coll: database.Collection("availability_windows")}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoAvailabilityRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, window); err != nil {
		return fmt.Errorf("failed to insert availability window: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) Update(ctx context.Context, window *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": window.ID}, window)
	if err != nil {
		return fmt.Errorf("failed to update availability window %s: %w", window.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoAvailabilityRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability window %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var window models.AvailabilityWindow
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&window); err != nil {
		return nil, err
	}
	return &window, nil
}

func (repo *MongoAvailabilityRepo) ListByResource(ctx context.Context, resourceID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"resource_id": resourceID},
		options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list windows for resource %s: %w", resourceID, err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode windows: %w", err)
	}
	return windows, nil
}

func (repo *MongoAvailabilityRepo) ListActiveForDate(ctx context.Context, resourceID string, weekday int, date string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"is_active":   true,
		"$or": bson.A{
			bson.M{"is_recurring": true, "day_of_week": weekday},
			bson.M{"is_recurring": false, "specific_date": date},
		},
	}

	cursor, err := repo.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list windows for resource %s on %s: %w", resourceID, date, err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode windows: %w", err)
	}
	return windows, nil
}
