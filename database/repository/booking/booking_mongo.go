package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.SyncEffective()
	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking document by ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListOnDate uses the denormalized effective slot so rescheduled bookings are found on
// their new date only.
func (repo *MongoBookingRepo) ListOnDate(ctx context.Context, category models.Category, date, clinicID string, excluded []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"category":      category,
		"effectiveDate": date,
	}
	if len(excluded) > 0 {
		filter["status"] = bson.M{"$nin": excluded}
	}
	if clinicID != "" {
		filter["clinicId"] = clinicID
	}

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings on %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListByCustomer returns a customer's bookings, newest first.
func (repo *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := repo.coll.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateSchedule modifies the schedule fields of an existing booking.
func (repo *MongoBookingRepo) UpdateSchedule(ctx context.Context, booking *models.Booking, prev models.BookingStatus) error {
	booking.SyncEffective()
	return repo.guardedSet(ctx, booking.ID, prev, bson.M{
		"rescheduledDate": booking.RescheduledDate,
		"rescheduledTime": booking.RescheduledTime,
		"effectiveDate":   booking.EffectiveDate,
		"effectiveTime":   booking.EffectiveTime,
		"status":          booking.Status,
		"history":         booking.History,
		"updatedAt":       booking.UpdatedAt,
	})
}

// UpdateStatus modifies the status and payment fields of an existing booking.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, booking *models.Booking, prev models.BookingStatus) error {
	return repo.guardedSet(ctx, booking.ID, prev, bson.M{
		"status":    booking.Status,
		"history":   booking.History,
		"payment":   booking.Payment,
		"updatedAt": booking.UpdatedAt,
	})
}

func (repo *MongoBookingRepo) guardedSet(ctx context.Context, id string, prev models.BookingStatus, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id, "status": prev}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrStaleBooking
	}
	return nil
}

// Delete removes a booking record from the database.
func (repo *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}
