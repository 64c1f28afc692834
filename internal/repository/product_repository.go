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

// ProductFilter holds optional equality filters for listing catalog items.
type ProductFilter struct {
	BusinessID *uuid.UUID
	Category   *string
	Kind       *string
	Available  *bool
	Featured   *bool
}

// ProductUpdate holds a partial field set for updating a catalog item.
type ProductUpdate struct {
	Name      *string
	Kind      *string
	Category  *string
	Price     *float64
	Featured  *bool
	Available *bool
}

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new catalog item using parameterized queries, stamping ID
// and timestamps when missing.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (id, business_id, name, kind, category, price, featured, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.BusinessID,
		product.Name,
		product.Kind,
		product.Category,
		product.Price,
		product.Featured,
		product.Available,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a catalog item by ID, nil when no item matches.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, business_id, name, kind, category, price, featured, available, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.BusinessID,
		&product.Name,
		&product.Kind,
		&product.Category,
		&product.Price,
		&product.Featured,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// ListForBusiness retrieves the catalog of a business, featured items first,
// then newest first.
func (r *productRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.Product, error) {
	return r.List(ctx, ProductFilter{BusinessID: &businessID})
}

// List retrieves catalog items matching the filter, featured items first,
// then newest first.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.BusinessID != nil {
		conditions = append(conditions, fmt.Sprintf("business_id = $%d", argIndex))
		args = append(args, *filter.BusinessID)
		argIndex++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}
	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIndex))
		args = append(args, *filter.Kind)
		argIndex++
	}
	if filter.Available != nil {
		conditions = append(conditions, fmt.Sprintf("available = $%d", argIndex))
		args = append(args, *filter.Available)
		argIndex++
	}
	if filter.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured = $%d", argIndex))
		args = append(args, *filter.Featured)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, name, kind, category, price, featured, available, created_at, updated_at
		FROM products
		%s
		ORDER BY featured DESC, created_at DESC
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.BusinessID,
			&product.Name,
			&product.Kind,
			&product.Category,
			&product.Price,
			&product.Featured,
			&product.Available,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update applies a partial field set to a catalog item, re-stamping
// updated_at.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) error {
	setClauses := []string{}
	args := []interface{}{id}
	argIndex := 2

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *update.Name)
		argIndex++
	}
	if update.Kind != nil {
		setClauses = append(setClauses, fmt.Sprintf("kind = $%d", argIndex))
		args = append(args, *update.Kind)
		argIndex++
	}
	if update.Category != nil {
		setClauses = append(setClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *update.Category)
		argIndex++
	}
	if update.Price != nil {
		setClauses = append(setClauses, fmt.Sprintf("price = $%d", argIndex))
		args = append(args, *update.Price)
		argIndex++
	}
	if update.Featured != nil {
		setClauses = append(setClauses, fmt.Sprintf("featured = $%d", argIndex))
		args = append(args, *update.Featured)
		argIndex++
	}
	if update.Available != nil {
		setClauses = append(setClauses, fmt.Sprintf("available = $%d", argIndex))
		args = append(args, *update.Available)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $1
	`, strings.Join(setClauses, ", "))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a catalog item. Deleting a missing ID is a no-op.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
