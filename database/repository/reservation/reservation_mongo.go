package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"pawcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seat struct {
	ID        string    `bson:"_id"`
	Slot      string    `bson:"slot"`
	Seat      int       `bson:"seat"`
	BookingID string     `bson:"bookingId"`
	CreatedAt time.Time  `bson:"createdAt"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty"`
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

func NewMongoReservationRepo(db *mongo.Database) ReservationRepository {
	return &mongoReservationRepo{coll: db.Collection("slot_reservations")}
}

func (r *mongoReservationRepo) Reserve(ctx context.Context, key Key, bookingID string, limit int, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slot := key.String()
	var expiry *time.Time
	if !expiresAt.IsZero() {
		expiry = &expiresAt
	}

	renew := bson.M{"$unset": bson.M{"expiresAt": ""}}
	if expiry != nil {
		renew = bson.M{"$set": bson.M{"expiresAt": *expiry}}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"slot": slot, "bookingId": bookingID}, renew)
	if err != nil {
		return fmt.Errorf("error checking reservation for %s: %w", slot, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	now := time.Now()
	for n := 1; n <= limit; n++ {
		doc := seat{
			ID:        fmt.Sprintf("%s#%d", slot, n),
			Slot:      slot,
			Seat:      n,
			BookingID: bookingID,
			CreatedAt: now,
			ExpiresAt: expiry,
		}
		_, err := r.coll.InsertOne(ctx, doc)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("error reserving seat %d of %s: %w", n, slot, err)
		}
		// The TTL monitor only sweeps about once a minute; a lapsed hold is free already.
		taken, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "expiresAt": bson.M{"$lte": now}}, doc)
		if err != nil {
			return fmt.Errorf("error taking over seat %d of %s: %w", n, slot, err)
		}
		if taken.MatchedCount > 0 {
			return nil
		}
	}
	return models.ErrSlotFull
}

func (r *mongoReservationRepo) Release(ctx context.Context, bookingID string, keep Key) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookingId": bookingID}
	if keep != (Key{}) {
		filter["slot"] = bson.M{"$ne": keep.String()}
	}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("error releasing reservations of booking %s: %w", bookingID, err)
	}
	return nil
}

func (r *mongoReservationRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slot", Value: 1}, {Key: "seat", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slot_seat"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("hold_expiry_ttl"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
