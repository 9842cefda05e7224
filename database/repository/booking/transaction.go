package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"brightsite/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateExclusive runs the overlap check and the insert inside one MongoDB
// transaction so two concurrent requests for the same resource and date
// cannot both pass the check and both persist. The engine additionally
// serializes callers per (resource, date) with an application-level lock;
// the transaction is the backstop when multiple instances share the store.
func (repo *MongoBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking, conflicts func(existing []models.Booking) bool) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		existing, err := repo.listLive(sc, booking.ResourceID, booking.Date)
		if err != nil {
			return err
		}
		if conflicts(existing) {
			return ErrConflict
		}
		if _, err := repo.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
