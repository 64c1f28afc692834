package transport

import (
	"errors"
	"net/http"

	"localbiz/internal/middleware"
	"localbiz/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitReviewRequest represents the review submission payload
type SubmitReviewRequest struct {
	ReviewerID   string  `json:"reviewer_id" validate:"required,uuid"`
	ReviewerName string  `json:"reviewer_name" validate:"required,max=255"`
	Rating       float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string  `json:"comment" validate:"max=2000"`
}

// ReviewHandler handles HTTP requests for business reviews
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers all review routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/businesses/{id}/reviews", h.SubmitReview)
	r.Get("/api/businesses/{id}/reviews", h.ListReviews)
}

// SubmitReview handles review creation. The business rating rollup is
// refreshed in the same operation.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req SubmitReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Review validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid reviewer id")
		return
	}

	review, err := h.reviewService.SubmitReview(r.Context(), businessID, reviewerID, req.ReviewerName, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		if errors.Is(err, service.ErrInvalidRating) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Review submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit review")
		return
	}

	h.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("business_id", businessID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles review listing for a business, newest first
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), businessID)
	if err != nil {
		h.logger.Error("Review listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}
