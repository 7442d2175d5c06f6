package clinicRepo

import (
	"context"

	"pawcare/models"
)

// ClinicRepository stores clinic locations and their opening hours.
type ClinicRepository interface {
	GetByID(ctx context.Context, id string) (*models.Clinic, error)
	List(ctx context.Context) ([]models.Clinic, error)
	Upsert(ctx context.Context, clinic *models.Clinic) error
}
