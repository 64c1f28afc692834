package service

import (
	"context"
	"errors"
	"fmt"

	"localbiz/internal/domain"
	"localbiz/internal/repository"

	"github.com/google/uuid"
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService defines the interface for review business logic
type ReviewService interface {
	SubmitReview(ctx context.Context, businessID, reviewerID uuid.UUID, reviewerName string, rating float64, comment string) (*domain.BusinessReview, error)
	ListReviews(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessReview, error)
	RecomputeRating(ctx context.Context, businessID uuid.UUID) error
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	businessRepo repository.BusinessRepository
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, businessRepo repository.BusinessRepository) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		businessRepo: businessRepo,
	}
}

// SubmitReview creates a review for a business. The business's denormalized
// rating is refreshed as part of the same write.
func (s *reviewService) SubmitReview(ctx context.Context, businessID, reviewerID uuid.UUID, reviewerName string, rating float64, comment string) (*domain.BusinessReview, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to check business: %w", err)
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}

	review := &domain.BusinessReview{
		BusinessID:   businessID,
		ReviewerID:   reviewerID,
		ReviewerName: reviewerName,
		Rating:       rating,
		Comment:      comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	return review, nil
}

// ListReviews retrieves all reviews of a business, newest first
func (s *reviewService) ListReviews(ctx context.Context, businessID uuid.UUID) ([]*domain.BusinessReview, error) {
	reviews, err := s.reviewRepo.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// RecomputeRating rebuilds the denormalized rating of a business from its
// current review set. Safe to call any number of times.
func (s *reviewService) RecomputeRating(ctx context.Context, businessID uuid.UUID) error {
	if err := s.reviewRepo.RecomputeBusinessRating(ctx, businessID); err != nil {
		return fmt.Errorf("failed to recompute rating: %w", err)
	}
	return nil
}
