package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfile mirrors the customer_profiles table. Profile data is
// best-effort convenience state; checkout never depends on it being fresh.
type CustomerProfile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string    `gorm:"not null" json:"email"`
	FirstName            string    `gorm:"not null;default:''" json:"first_name"`
	Phone                string    `gorm:"not null;default:''" json:"phone"`
	Address              string    `gorm:"not null;default:''" json:"address"`
	City                 string    `gorm:"not null;default:''" json:"city"`
	Area                 string    `gorm:"not null;default:''" json:"area"`
	ZipCode              string    `gorm:"not null;default:''" json:"zip_code"`
	DeliveryInstructions string    `gorm:"not null;default:''" json:"delivery_instructions"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName pins the table name onto the migration's schema.
func (CustomerProfile) TableName() string { return "customer_profiles" }
