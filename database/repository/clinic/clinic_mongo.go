package clinicRepo

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

type mongoClinicRepo struct {
	coll *mongo.Collection
}

func NewMongoClinicRepo(db *mongo.Database) ClinicRepository {
	return &mongoClinicRepo{coll: db.Collection("clinics")}
}

func (r *mongoClinicRepo) GetByID(ctx context.Context, id string) (*models.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Clinic
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrClinicNotFound
		}
		return nil, fmt.Errorf("error fetching clinic %s: %w", id, err)
	}
	return &c, nil
}

func (r *mongoClinicRepo) List(ctx context.Context) ([]models.Clinic, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing clinics: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Clinic
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding clinics: %w", err)
	}
	return out, nil
}

func (r *mongoClinicRepo) Upsert(ctx context.Context, clinic *models.Clinic) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": clinic.ID}, clinic, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error saving clinic %s: %w", clinic.ID, err)
	}
	return nil
}
