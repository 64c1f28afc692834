package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessReview represents a customer review of a business.
// Reviews are immutable once created; ResponseText and ResponseAt are filled
// in later if the business owner replies, and stay nil until then.
type BusinessReview struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	BusinessID   uuid.UUID  `json:"business_id" db:"business_id"`
	ReviewerID   uuid.UUID  `json:"reviewer_id" db:"reviewer_id"`
	ReviewerName string     `json:"reviewer_name" db:"reviewer_name"`
	Rating       float64    `json:"rating" db:"rating"`
	Comment      string     `json:"comment" db:"comment"`
	ResponseText *string    `json:"response_text,omitempty" db:"response_text"`
	ResponseAt   *time.Time `json:"response_at,omitempty" db:"response_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
