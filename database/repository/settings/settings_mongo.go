package settingsRepo

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

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo returns a SettingsRepository backed by the "settings" collection.
func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepo{coll: db.Collection("settings")}
}

func (r *mongoSettingsRepo) Get(ctx context.Context, category models.Category) (*models.CategorySettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.CategorySettings
	if err := r.coll.FindOne(ctx, bson.M{"category": category}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error fetching settings for %s: %w", category, err)
	}
	return &s, nil
}

func (r *mongoSettingsRepo) List(ctx context.Context) ([]models.CategorySettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing settings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.CategorySettings
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	return out, nil
}

func (r *mongoSettingsRepo) Upsert(ctx context.Context, settings *models.CategorySettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"category": settings.Category},
		settings,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("error saving settings for %s: %w", settings.Category, err)
	}
	return nil
}

func (r *mongoSettingsRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_category"),
	})
	if err != nil {
		return fmt.Errorf("failed to create settings indexes: %w", err)
	}
	return nil
}
