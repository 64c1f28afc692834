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

// LocationUpdate holds a partial field set for updating a location.
type LocationUpdate struct {
	Address   *string
	City      *string
	Latitude  *float64
	Longitude *float64
	IsPrimary *bool
}

// LocationRepository defines the interface for business location data access
type LocationRepository interface {
	Create(ctx context.Context, location *domain.BusinessLocation) error
	ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessLocation, error)
	Update(ctx context.Context, id uuid.UUID, update LocationUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type locationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new instance of LocationRepository
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

// Create inserts a new location using parameterized queries, stamping ID and
// timestamps when missing.
func (r *locationRepository) Create(ctx context.Context, location *domain.BusinessLocation) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now

	query := `
		INSERT INTO business_locations (id, business_id, address, city, latitude, longitude, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		location.ID,
		location.BusinessID,
		location.Address,
		location.City,
		location.Latitude,
		location.Longitude,
		location.IsPrimary,
		location.CreatedAt,
		location.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

// ListForBusiness retrieves all locations of a business, primary location
// first, then oldest first.
func (r *locationRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessLocation, error) {
	query := `
		SELECT id, business_id, address, city, latitude, longitude, is_primary, created_at, updated_at
		FROM business_locations
		WHERE business_id = $1
		ORDER BY is_primary DESC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []*domain.BusinessLocation{}
	for rows.Next() {
		location := &domain.BusinessLocation{}
		err := rows.Scan(
			&location.ID,
			&location.BusinessID,
			&location.Address,
			&location.City,
			&location.Latitude,
			&location.Longitude,
			&location.IsPrimary,
			&location.CreatedAt,
			&location.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// Update applies a partial field set to a location, re-stamping updated_at.
func (r *locationRepository) Update(ctx context.Context, id uuid.UUID, update LocationUpdate) error {
	setClauses := []string{}
	args := []interface{}{id}
	argIndex := 2

	if update.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", argIndex))
		args = append(args, *update.Address)
		argIndex++
	}
	if update.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, *update.City)
		argIndex++
	}
	if update.Latitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("latitude = $%d", argIndex))
		args = append(args, *update.Latitude)
		argIndex++
	}
	if update.Longitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("longitude = $%d", argIndex))
		args = append(args, *update.Longitude)
		argIndex++
	}
	if update.IsPrimary != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_primary = $%d", argIndex))
		args = append(args, *update.IsPrimary)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())

	query := fmt.Sprintf(`
		UPDATE business_locations
		SET %s
		WHERE id = $1
	`, strings.Join(setClauses, ", "))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	return nil
}

// Delete removes a location. Deleting an ID that does not exist is a no-op,
// so repeated deletes succeed.
func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM business_locations WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}
