package service

import (
	"context"
	"errors"
	"fmt"

	"localbiz/internal/domain"
	"localbiz/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidKind      = errors.New("kind must be product or service")
)

// BusinessService defines the interface for directory business logic:
// businesses, their locations, their catalog, and the derived statistics.
type BusinessService interface {
	RegisterBusiness(ctx context.Context, ownerID uuid.UUID, name, category, city string) (*domain.Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error)
	ListBusinesses(ctx context.Context, filter repository.BusinessFilter) ([]*domain.Business, error)
	UpdateBusiness(ctx context.Context, id uuid.UUID, update repository.BusinessUpdate) error
	GetStats(ctx context.Context, id uuid.UUID) (*domain.BusinessStats, error)

	AddLocation(ctx context.Context, location *domain.BusinessLocation) error
	ListLocations(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessLocation, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, update repository.LocationUpdate) error
	RemoveLocation(ctx context.Context, id uuid.UUID) error

	AddProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListCatalog(ctx context.Context, businessID uuid.UUID) ([]*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) error
	RemoveProduct(ctx context.Context, id uuid.UUID) error
}

type businessService struct {
	businessRepo repository.BusinessRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
}

// NewBusinessService creates a new instance of BusinessService
func NewBusinessService(
	businessRepo repository.BusinessRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
) BusinessService {
	return &businessService{
		businessRepo: businessRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
	}
}

// RegisterBusiness creates a new business listing. Moderation status,
// verification flag and the rating rollup start at their defaults.
func (s *businessService) RegisterBusiness(ctx context.Context, ownerID uuid.UUID, name, category, city string) (*domain.Business, error) {
	business := &domain.Business{
		OwnerID:  ownerID,
		Name:     name,
		Category: category,
		City:     city,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to register business: %w", err)
	}

	return business, nil
}

// GetBusiness retrieves a business by ID
func (s *businessService) GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

// GetBusinessByOwner retrieves the business owned by the given user
func (s *businessService) GetBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	business, err := s.businessRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business by owner: %w", err)
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

// ListBusinesses retrieves businesses matching the filter
func (s *businessService) ListBusinesses(ctx context.Context, filter repository.BusinessFilter) ([]*domain.Business, error) {
	businesses, err := s.businessRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// UpdateBusiness applies a partial update to an existing business
func (s *businessService) UpdateBusiness(ctx context.Context, id uuid.UUID, update repository.BusinessUpdate) error {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check business: %w", err)
	}
	if business == nil {
		return ErrBusinessNotFound
	}

	if err := s.businessRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	return nil
}

// GetStats computes the derived statistics of a business on demand
func (s *businessService) GetStats(ctx context.Context, id uuid.UUID) (*domain.BusinessStats, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check business: %w", err)
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}

	stats, err := s.businessRepo.Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// AddLocation adds a location to a business
func (s *businessService) AddLocation(ctx context.Context, location *domain.BusinessLocation) error {
	business, err := s.businessRepo.FindByID(ctx, location.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to check business: %w", err)
	}
	if business == nil {
		return ErrBusinessNotFound
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return fmt.Errorf("failed to add location: %w", err)
	}
	return nil
}

// ListLocations retrieves the locations of a business, primary first
func (s *businessService) ListLocations(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessLocation, error) {
	locations, err := s.locationRepo.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// UpdateLocation applies a partial update to a location
func (s *businessService) UpdateLocation(ctx context.Context, id uuid.UUID, update repository.LocationUpdate) error {
	if err := s.locationRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// RemoveLocation deletes a location; removing a missing one succeeds
func (s *businessService) RemoveLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove location: %w", err)
	}
	return nil
}

// AddProduct adds a catalog item to a business
func (s *businessService) AddProduct(ctx context.Context, product *domain.Product) error {
	if product.Kind != domain.ProductKindProduct && product.Kind != domain.ProductKindService {
		return ErrInvalidKind
	}

	business, err := s.businessRepo.FindByID(ctx, product.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to check business: %w", err)
	}
	if business == nil {
		return ErrBusinessNotFound
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	return nil
}

// GetProduct retrieves a catalog item by ID
func (s *businessService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListCatalog retrieves the catalog of a business, featured items first
func (s *businessService) ListCatalog(ctx context.Context, businessID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.productRepo.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return products, nil
}

// ListProducts retrieves catalog items matching the filter
func (s *businessService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update to a catalog item
func (s *businessService) UpdateProduct(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) error {
	if update.Kind != nil && *update.Kind != domain.ProductKindProduct && *update.Kind != domain.ProductKindService {
		return ErrInvalidKind
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// RemoveProduct deletes a catalog item; removing a missing one succeeds
func (s *businessService) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}
	return nil
}
