package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business lifecycle statuses. Moderation transitions are handled by the
// admin layer; this module only stores the current value.
const (
	BusinessStatusPending   = "pending"
	BusinessStatusApproved  = "approved"
	BusinessStatusRejected  = "rejected"
	BusinessStatusSuspended = "suspended"
)

// Business represents a listed business in the directory.
// AverageRating and ReviewCount are denormalized from business_reviews
// and maintained by the review rollup.
type Business struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	City          string    `json:"city" db:"city"`
	Status        string    `json:"status" db:"status"`
	Verified      bool      `json:"verified" db:"verified"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
	ReviewCount   int       `json:"review_count" db:"review_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// BusinessStats is a derived, non-persisted summary of a business.
// MonthlySales and ProfileVisits have no data source yet and are always zero.
type BusinessStats struct {
	ProductCount  int     `json:"product_count"`
	ServiceCount  int     `json:"service_count"`
	FeaturedCount int     `json:"featured_count"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	MonthlySales  int     `json:"monthly_sales"`
	ProfileVisits int     `json:"profile_visits"`
}
