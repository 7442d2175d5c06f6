package settingsRepo

import (
	"context"

	"pawcare/models"
)

// SettingsRepository stores one CategorySettings document per category.
type SettingsRepository interface {
	Get(ctx context.Context, category models.Category) (*models.CategorySettings, error)
	List(ctx context.Context) ([]models.CategorySettings, error)
	Upsert(ctx context.Context, settings *models.CategorySettings) error
	EnsureIndexes(ctx context.Context) error
}
