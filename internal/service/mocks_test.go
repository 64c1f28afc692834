package service

import (
	"context"
	"time"

	"localbiz/internal/domain"
	"localbiz/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockBusinessRepository struct {
	businesses map[uuid.UUID]*domain.Business
	stats      map[uuid.UUID]*domain.BusinessStats
}

func newMockBusinessRepository() *mockBusinessRepository {
	return &mockBusinessRepository{
		businesses: make(map[uuid.UUID]*domain.Business),
		stats:      make(map[uuid.UUID]*domain.BusinessStats),
	}
}

func (m *mockBusinessRepository) Create(ctx context.Context, business *domain.Business) error {
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

	m.businesses[business.ID] = business
	return nil
}

func (m *mockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return m.businesses[id], nil
}

func (m *mockBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	var newest *domain.Business
	for _, business := range m.businesses {
		if business.OwnerID != ownerID {
			continue
		}
		if newest == nil || business.CreatedAt.After(newest.CreatedAt) {
			newest = business
		}
	}
	return newest, nil
}

func (m *mockBusinessRepository) List(ctx context.Context, filter repository.BusinessFilter) ([]*domain.Business, error) {
	results := []*domain.Business{}
	for _, business := range m.businesses {
		if filter.Category != nil && business.Category != *filter.Category {
			continue
		}
		if filter.City != nil && business.City != *filter.City {
			continue
		}
		if filter.Verified != nil && business.Verified != *filter.Verified {
			continue
		}
		results = append(results, business)
	}
	return results, nil
}

func (m *mockBusinessRepository) Update(ctx context.Context, id uuid.UUID, update repository.BusinessUpdate) error {
	business, exists := m.businesses[id]
	if !exists {
		return nil
	}
	if update.Name != nil {
		business.Name = *update.Name
	}
	if update.Category != nil {
		business.Category = *update.Category
	}
	if update.City != nil {
		business.City = *update.City
	}
	if update.Status != nil {
		business.Status = *update.Status
	}
	if update.Verified != nil {
		business.Verified = *update.Verified
	}
	business.UpdatedAt = time.Now()
	return nil
}

func (m *mockBusinessRepository) Stats(ctx context.Context, id uuid.UUID) (*domain.BusinessStats, error) {
	if stats, exists := m.stats[id]; exists {
		return stats, nil
	}
	return &domain.BusinessStats{}, nil
}

type mockLocationRepository struct {
	locations map[uuid.UUID]*domain.BusinessLocation
}

func newMockLocationRepository() *mockLocationRepository {
	return &mockLocationRepository{locations: make(map[uuid.UUID]*domain.BusinessLocation)}
}

func (m *mockLocationRepository) Create(ctx context.Context, location *domain.BusinessLocation) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now
	m.locations[location.ID] = location
	return nil
}

func (m *mockLocationRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessLocation, error) {
	results := []*domain.BusinessLocation{}
	for _, location := range m.locations {
		if location.BusinessID == businessID {
			results = append(results, location)
		}
	}
	return results, nil
}

func (m *mockLocationRepository) Update(ctx context.Context, id uuid.UUID, update repository.LocationUpdate) error {
	location, exists := m.locations[id]
	if !exists {
		return nil
	}
	if update.Address != nil {
		location.Address = *update.Address
	}
	if update.IsPrimary != nil {
		location.IsPrimary = *update.IsPrimary
	}
	location.UpdatedAt = time.Now()
	return nil
}

func (m *mockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.locations, id)
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return m.products[id], nil
}

func (m *mockProductRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.Product, error) {
	return m.List(ctx, repository.ProductFilter{BusinessID: &businessID})
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	results := []*domain.Product{}
	for _, product := range m.products {
		if filter.BusinessID != nil && product.BusinessID != *filter.BusinessID {
			continue
		}
		if filter.Kind != nil && product.Kind != *filter.Kind {
			continue
		}
		if filter.Category != nil && product.Category != *filter.Category {
			continue
		}
		if filter.Available != nil && product.Available != *filter.Available {
			continue
		}
		if filter.Featured != nil && product.Featured != *filter.Featured {
			continue
		}
		results = append(results, product)
	}
	return results, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id uuid.UUID, update repository.ProductUpdate) error {
	product, exists := m.products[id]
	if !exists {
		return nil
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Kind != nil {
		product.Kind = *update.Kind
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Featured != nil {
		product.Featured = *update.Featured
	}
	if update.Available != nil {
		product.Available = *update.Available
	}
	product.UpdatedAt = time.Now()
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

type mockReviewRepository struct {
	reviews      map[uuid.UUID]*domain.BusinessReview
	businessRepo *mockBusinessRepository
}

func newMockReviewRepository(businessRepo *mockBusinessRepository) *mockReviewRepository {
	return &mockReviewRepository{
		reviews:      make(map[uuid.UUID]*domain.BusinessReview),
		businessRepo: businessRepo,
	}
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.BusinessReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	m.reviews[review.ID] = review
	return m.RecomputeBusinessRating(ctx, review.BusinessID)
}

func (m *mockReviewRepository) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessReview, error) {
	results := []*domain.BusinessReview{}
	for _, review := range m.reviews {
		if review.BusinessID == businessID {
			results = append(results, review)
		}
	}
	return results, nil
}

func (m *mockReviewRepository) RecomputeBusinessRating(ctx context.Context, businessID uuid.UUID) error {
	sum := 0.0
	count := 0
	for _, review := range m.reviews {
		if review.BusinessID == businessID {
			sum += review.Rating
			count++
		}
	}

	business, exists := m.businessRepo.businesses[businessID]
	if !exists {
		return nil
	}
	if count == 0 {
		business.AverageRating = 0
	} else {
		business.AverageRating = sum / float64(count)
	}
	business.ReviewCount = count
	business.UpdatedAt = time.Now()
	return nil
}
