package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"localbiz/internal/domain"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review data access, including
// the rating rollup kept on the parent business.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.BusinessReview) error
	ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessReview, error)
	RecomputeBusinessRating(ctx context.Context, businessID uuid.UUID) error
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review and refreshes the rating rollup of its business
// in a single transaction, so a committed review is never visible with a
// stale average on the business record.
func (r *reviewRepository) Create(ctx context.Context, review *domain.BusinessReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin review transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO business_reviews (id, business_id, reviewer_id, reviewer_name, rating, comment, response_text, response_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		review.ID,
		review.BusinessID,
		review.ReviewerID,
		review.ReviewerName,
		review.Rating,
		review.Comment,
		review.ResponseText,
		review.ResponseAt,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if err := recomputeBusinessRating(ctx, tx, review.BusinessID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review transaction: %w", err)
	}

	return nil
}

// ListForBusiness retrieves all reviews of a business, newest first. The
// optional owner response columns come back as NULLs and are mapped to nil
// pointers.
func (r *reviewRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessReview, error) {
	query := `
		SELECT id, business_id, reviewer_id, reviewer_name, rating, comment, response_text, response_at, created_at
		FROM business_reviews
		WHERE business_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.BusinessReview{}
	for rows.Next() {
		review := &domain.BusinessReview{}
		var responseText sql.NullString
		var responseAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.BusinessID,
			&review.ReviewerID,
			&review.ReviewerName,
			&review.Rating,
			&review.Comment,
			&responseText,
			&responseAt,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		if responseText.Valid {
			review.ResponseText = &responseText.String
		}
		if responseAt.Valid {
			review.ResponseAt = &responseAt.Time
		}

		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// RecomputeBusinessRating rewrites the denormalized average rating and review
// count on a business from its current review set. Idempotent: running it
// again with an unchanged review set writes the same values.
func (r *reviewRepository) RecomputeBusinessRating(ctx context.Context, businessID uuid.UUID) error {
	return recomputeBusinessRating(ctx, r.db, businessID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// recomputeBusinessRating performs the rollup as one UPDATE with a scalar
// subquery, so the read-aggregate-write cannot interleave with a concurrent
// rollup: concurrent review writers serialize on the business row. A business
// with no reviews gets average 0, count 0.
func recomputeBusinessRating(ctx context.Context, db execer, businessID uuid.UUID) error {
	query := `
		UPDATE businesses
		SET average_rating = agg.avg_rating,
		    review_count = agg.cnt,
		    updated_at = $2
		FROM (
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS cnt
			FROM business_reviews
			WHERE business_id = $1
		) AS agg
		WHERE businesses.id = $1
	`

	_, err := db.ExecContext(ctx, query, businessID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to recompute business rating: %w", err)
	}

	return nil
}
