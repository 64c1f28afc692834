package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product kinds. A business lists both physical products and offered services
// in the same catalog table.
const (
	ProductKindProduct = "product"
	ProductKindService = "service"
)

// Product represents an item or service offered by a business
type Product struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BusinessID uuid.UUID `json:"business_id" db:"business_id"`
	Name       string    `json:"name" db:"name"`
	Kind       string    `json:"kind" db:"kind"`
	Category   string    `json:"category" db:"category"`
	Price      float64   `json:"price" db:"price"`
	Featured   bool      `json:"featured" db:"featured"`
	Available  bool      `json:"available" db:"available"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
