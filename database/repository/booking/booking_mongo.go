package bookingRepo

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

// MongoBookingRepo implements BookingRepository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repository over the "bookings" collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) UpdateFromStatus(ctx context.Context, booking *models.Booking, fromStatus string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Matching on the expected current status makes the replace a no-op when
	// a concurrent transition got there first.
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": booking.ID, "status": fromStatus}, booking)
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	return res.MatchedCount == 1, nil
}

func (repo *MongoBookingRepo) List(ctx context.Context, status string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := repo.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListLive(ctx context.Context, resourceID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return repo.listLive(ctx, resourceID, date)
}

func (repo *MongoBookingRepo) listLive(ctx context.Context, resourceID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"resource_id": resourceID,
		"date":        date,
		"status": bson.M{"$in": bson.A{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
		}},
	}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list live bookings for %s on %s: %w", resourceID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode live bookings: %w", err)
	}
	return bookings, nil
}
