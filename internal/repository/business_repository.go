package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"localbiz/internal/domain"

	"github.com/google/uuid"
)

// BusinessFilter holds optional equality filters for listing businesses.
// Nil fields are not applied.
type BusinessFilter struct {
	Category *string
	City     *string
	Verified *bool
}

// BusinessUpdate holds a partial field set for updating a business.
// Nil fields are left untouched; updated_at is always re-stamped.
type BusinessUpdate struct {
	Name     *string
	Category *string
	City     *string
	Status   *string
	Verified *bool
}

// BusinessRepository defines the interface for business data access
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error)
	List(ctx context.Context, filter BusinessFilter) ([]*domain.Business, error)
	Update(ctx context.Context, id uuid.UUID, update BusinessUpdate) error
	Stats(ctx context.Context, id uuid.UUID) (*domain.BusinessStats, error)
}

type businessRepository struct {
	db *sql.DB
}

// NewBusinessRepository creates a new instance of BusinessRepository
func NewBusinessRepository(db *sql.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create inserts a new business using parameterized queries. Missing ID and
// timestamps are stamped here, and new businesses always start unverified,
// pending moderation, with an empty rating rollup.
func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	if business.Status == "" {
		business.Status = domain.BusinessStatusPending
	}
	business.Verified = false
	business.AverageRating = 0
	business.ReviewCount = 0

	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	query := `
		INSERT INTO businesses (id, owner_id, name, category, city, status, verified, average_rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		business.ID,
		business.OwnerID,
		business.Name,
		business.Category,
		business.City,
		business.Status,
		business.Verified,
		business.AverageRating,
		business.ReviewCount,
		business.CreatedAt,
		business.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

// FindByID retrieves a business by ID. An unknown ID is not an error: the
// result is nil and the caller decides what absence means.
func (r *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	query := `
		SELECT id, owner_id, name, category, city, status, verified, average_rating, review_count, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	business := &domain.Business{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Category,
		&business.City,
		&business.Status,
		&business.Verified,
		&business.AverageRating,
		&business.ReviewCount,
		&business.CreatedAt,
		&business.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business by ID: %w", err)
	}

	return business, nil
}

// FindByOwner retrieves the newest business owned by the given user, or nil
// when the user owns none. Owners with several businesses get the most
// recently created one.
func (r *businessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	query := `
		SELECT id, owner_id, name, category, city, status, verified, average_rating, review_count, created_at, updated_at
		FROM businesses
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	business := &domain.Business{}
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Name,
		&business.Category,
		&business.City,
		&business.Status,
		&business.Verified,
		&business.AverageRating,
		&business.ReviewCount,
		&business.CreatedAt,
		&business.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business by owner: %w", err)
	}

	return business, nil
}

// List retrieves businesses matching the filter, best-rated first and newest
// first within the same rating.
func (r *businessRepository) List(ctx context.Context, filter BusinessFilter) ([]*domain.Business, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}
	if filter.City != nil {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, *filter.City)
		argIndex++
	}
	if filter.Verified != nil {
		conditions = append(conditions, fmt.Sprintf("verified = $%d", argIndex))
		args = append(args, *filter.Verified)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, name, category, city, status, verified, average_rating, review_count, created_at, updated_at
		FROM businesses
		%s
		ORDER BY average_rating DESC, created_at DESC
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := []*domain.Business{}
	for rows.Next() {
		business := &domain.Business{}
		err := rows.Scan(
			&business.ID,
			&business.OwnerID,
			&business.Name,
			&business.Category,
			&business.City,
			&business.Status,
			&business.Verified,
			&business.AverageRating,
			&business.ReviewCount,
			&business.CreatedAt,
			&business.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating businesses: %w", err)
	}

	return businesses, nil
}

// Update applies a partial field set to a business. Only non-nil fields are
// written; updated_at is always re-stamped. The rating rollup columns are
// never touched here.
func (r *businessRepository) Update(ctx context.Context, id uuid.UUID, update BusinessUpdate) error {
	setClauses := []string{}
	args := []interface{}{id}
	argIndex := 2

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *update.Name)
		argIndex++
	}
	if update.Category != nil {
		setClauses = append(setClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *update.Category)
		argIndex++
	}
	if update.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, *update.City)
		argIndex++
	}
	if update.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *update.Status)
		argIndex++
	}
	if update.Verified != nil {
		setClauses = append(setClauses, fmt.Sprintf("verified = $%d", argIndex))
		args = append(args, *update.Verified)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())

	query := fmt.Sprintf(`
		UPDATE businesses
		SET %s
		WHERE id = $1
	`, strings.Join(setClauses, ", "))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	return nil
}

// Stats aggregates the catalog and review figures for a business on demand.
// Nothing is persisted. MonthlySales and ProfileVisits are placeholders with
// no data source yet.
func (r *businessRepository) Stats(ctx context.Context, id uuid.UUID) (*domain.BusinessStats, error) {
	stats := &domain.BusinessStats{}

	catalogQuery := `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'product'),
			COUNT(*) FILTER (WHERE kind = 'service'),
			COUNT(*) FILTER (WHERE featured)
		FROM products
		WHERE business_id = $1
	`

	err := r.db.QueryRowContext(ctx, catalogQuery, id).Scan(
		&stats.ProductCount,
		&stats.ServiceCount,
		&stats.FeaturedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate catalog stats: %w", err)
	}

	reviewQuery := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM business_reviews
		WHERE business_id = $1
	`

	err = r.db.QueryRowContext(ctx, reviewQuery, id).Scan(
		&stats.AverageRating,
		&stats.ReviewCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate review stats: %w", err)
	}

	return stats, nil
}
