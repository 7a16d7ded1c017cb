package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/pkg/db/models"
	pkgerrors "github.com/estrie-eats/checkout-backend/pkg/errors"
)

// Store is the profile persistence surface the checkout flow depends on.
// Failures here are logged by callers and never block a submission.
type Store interface {
	FindByCustomerID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error)
	Upsert(ctx context.Context, id uuid.UUID, form checkout.CustomerFormData) (*models.CustomerProfile, error)
}

// Repository exposes customer-profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCustomerID loads a profile by the customer's UUID.
func (r *Repository) FindByCustomerID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer profile")
	}
	return &profile, nil
}

// Upsert writes the checkout form's contact fields onto the customer's
// profile, creating the row on first sight.
func (r *Repository) Upsert(ctx context.Context, id uuid.UUID, form checkout.CustomerFormData) (*models.CustomerProfile, error) {
	profile := models.CustomerProfile{
		ID:                   id,
		Email:                form.Email,
		FirstName:            form.FirstName,
		Phone:                form.Phone,
		Address:              form.Address,
		City:                 form.City,
		Area:                 form.Area,
		ZipCode:              form.ZipCode,
		DeliveryInstructions: form.DeliveryInstructions,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "first_name", "phone", "address", "city",
				"area", "zip_code", "delivery_instructions", "updated_at",
			}),
		}).
		Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
