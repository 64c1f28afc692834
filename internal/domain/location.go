package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessLocation represents a physical location of a business.
// A business may have several locations; IsPrimary marks the one shown
// first in listings. Nothing here enforces a single primary location.
type BusinessLocation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BusinessID uuid.UUID `json:"business_id" db:"business_id"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	IsPrimary  bool      `json:"is_primary" db:"is_primary"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
