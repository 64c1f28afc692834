package repository

import (
	"context"
	"testing"

	"localbiz/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProductFindByIDReturnsNilForUnknownID(t *testing.T) {
	repo := NewProductRepository(testDB)

	product, err := repo.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Unknown ID must not be an error, got: %v", err)
	}
	if product != nil {
		t.Errorf("Expected nil for unknown ID, got %+v", product)
	}
}

func TestProductDeleteIsIdempotent(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	business := createTestBusiness(t, "Delete Twice", "retail", "Lisbon")

	product := &domain.Product{
		BusinessID: business.ID,
		Name:       "Ephemeral",
		Kind:       domain.ProductKindProduct,
		Available:  true,
	}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("Second delete must succeed, got: %v", err)
	}
}

func TestProductListForBusinessPlacesFeaturedFirst(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	business := createTestBusiness(t, "Featured Shop", "retail", "Lisbon")

	plain := &domain.Product{BusinessID: business.ID, Name: "Plain", Kind: domain.ProductKindProduct, Available: true}
	if err := repo.Create(ctx, plain); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	featured := &domain.Product{BusinessID: business.ID, Name: "Featured", Kind: domain.ProductKindProduct, Featured: true, Available: true}
	if err := repo.Create(ctx, featured); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	products, err := repo.ListForBusiness(ctx, business.ID)
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != featured.ID {
		t.Error("Featured product must be listed first")
	}
}

func TestProductListAppliesFilters(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	business := createTestBusiness(t, "Filter Shop", "retail", "Lisbon")

	items := []*domain.Product{
		{BusinessID: business.ID, Name: "Available Widget", Kind: domain.ProductKindProduct, Category: "tools", Available: true},
		{BusinessID: business.ID, Name: "Sold Out Widget", Kind: domain.ProductKindProduct, Category: "tools", Available: false},
		{BusinessID: business.ID, Name: "Cleaning", Kind: domain.ProductKindService, Category: "home", Available: true},
	}
	for _, item := range items {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("Failed to create product: %v", err)
		}
	}

	kind := domain.ProductKindProduct
	available := true
	filtered, err := repo.List(ctx, ProductFilter{
		BusinessID: &business.ID,
		Kind:       &kind,
		Available:  &available,
	})
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}

	if len(filtered) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(filtered))
	}
	if filtered[0].Name != "Available Widget" {
		t.Errorf("Unexpected product: %s", filtered[0].Name)
	}
}

// Whatever mix of featured flags a catalog holds, every featured item sorts
// before every non-featured one, and same-flag items are newest first
func TestProperty_CatalogOrderingFeaturedThenNewest(t *testing.T) {
	businessRepo := NewBusinessRepository(testDB)
	productRepo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("featured items sort before non-featured, ties newest first", prop.ForAll(
		func(featuredFlags []bool) bool {
			business := &domain.Business{
				OwnerID:  uuid.New(),
				Name:     "Catalog Business",
				Category: "retail",
				City:     "Lisbon",
			}
			if err := businessRepo.Create(ctx, business); err != nil {
				t.Logf("Failed to create business: %v", err)
				return false
			}

			for i, flag := range featuredFlags {
				product := &domain.Product{
					BusinessID: business.ID,
					Name:       "Item " + uuid.New().String()[:8],
					Kind:       domain.ProductKindProduct,
					Featured:   flag,
					Available:  i%2 == 0,
				}
				if err := productRepo.Create(ctx, product); err != nil {
					t.Logf("Failed to create product: %v", err)
					return false
				}
			}

			products, err := productRepo.ListForBusiness(ctx, business.ID)
			if err != nil {
				t.Logf("Failed to list products: %v", err)
				return false
			}

			if len(products) != len(featuredFlags) {
				t.Logf("Expected %d products, got %d", len(featuredFlags), len(products))
				return false
			}

			seenNonFeatured := false
			for i, product := range products {
				if !product.Featured {
					seenNonFeatured = true
				} else if seenNonFeatured {
					t.Logf("Featured product at position %d after non-featured", i)
					return false
				}

				if i > 0 && products[i-1].Featured == product.Featured {
					if products[i-1].CreatedAt.Before(product.CreatedAt) {
						t.Logf("Same-flag products out of creation order at position %d", i)
						return false
					}
				}
			}

			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductUpdatePartialFields(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	business := createTestBusiness(t, "Partial Update", "retail", "Lisbon")

	product := &domain.Product{
		BusinessID: business.ID,
		Name:       "Stable Name",
		Kind:       domain.ProductKindProduct,
		Category:   "tools",
		Price:      19.99,
		Available:  true,
	}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}

	newPrice := 24.99
	featured := true
	if err := repo.Update(ctx, product.ID, ProductUpdate{Price: &newPrice, Featured: &featured}); err != nil {
		t.Fatalf("Failed to update product: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, product.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("Failed to reload product: %v", err)
	}

	if reloaded.Name != product.Name {
		t.Errorf("Name must be untouched, got %q", reloaded.Name)
	}
	if reloaded.Price != newPrice {
		t.Errorf("Expected price %f, got %f", newPrice, reloaded.Price)
	}
	if !reloaded.Featured {
		t.Error("Featured flag must be updated")
	}
	if !reloaded.UpdatedAt.After(product.UpdatedAt) {
		t.Error("updated_at must be re-stamped on update")
	}
}
