package transport

import (
	"errors"
	"net/http"

	"localbiz/internal/domain"
	"localbiz/internal/middleware"
	"localbiz/internal/repository"
	"localbiz/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterBusinessRequest represents the business registration payload
type RegisterBusinessRequest struct {
	OwnerID  string `json:"owner_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,max=255"`
	Category string `json:"category" validate:"required,max=100"`
	City     string `json:"city" validate:"required,max=100"`
}

// UpdateBusinessRequest represents a partial business update payload
type UpdateBusinessRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected suspended"`
	Verified *bool   `json:"verified,omitempty"`
}

// AddLocationRequest represents the location creation payload
type AddLocationRequest struct {
	Address   string  `json:"address" validate:"required,max=500"`
	City      string  `json:"city" validate:"required,max=100"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	IsPrimary bool    `json:"is_primary"`
}

// UpdateLocationRequest represents a partial location update payload
type UpdateLocationRequest struct {
	Address   *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	City      *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	IsPrimary *bool    `json:"is_primary,omitempty"`
}

// AddProductRequest represents the catalog item creation payload
type AddProductRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Kind      string  `json:"kind" validate:"required,oneof=product service"`
	Category  string  `json:"category" validate:"max=100"`
	Price     float64 `json:"price" validate:"gte=0"`
	Featured  bool    `json:"featured"`
	Available bool    `json:"available"`
}

// UpdateProductRequest represents a partial catalog item update payload
type UpdateProductRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Kind      *string  `json:"kind,omitempty" validate:"omitempty,oneof=product service"`
	Category  *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Featured  *bool    `json:"featured,omitempty"`
	Available *bool    `json:"available,omitempty"`
}

// BusinessHandler handles HTTP requests for businesses, locations and catalog
type BusinessHandler struct {
	businessService service.BusinessService
	logger          *zap.Logger
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService service.BusinessService, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		logger:          logger,
	}
}

// RegisterRoutes registers all business, location and catalog routes.
// Paths are registered explicitly so the review handler can share the
// /api/businesses/{id} subtree without a mount conflict.
func (h *BusinessHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/businesses", h.RegisterBusiness)
	r.Get("/api/businesses", h.ListBusinesses)
	r.Get("/api/businesses/{id}", h.GetBusiness)
	r.Patch("/api/businesses/{id}", h.UpdateBusiness)
	r.Get("/api/businesses/{id}/stats", h.GetStats)

	r.Post("/api/businesses/{id}/locations", h.AddLocation)
	r.Get("/api/businesses/{id}/locations", h.ListLocations)
	r.Patch("/api/locations/{id}", h.UpdateLocation)
	r.Delete("/api/locations/{id}", h.RemoveLocation)

	r.Post("/api/businesses/{id}/products", h.AddProduct)
	r.Get("/api/businesses/{id}/products", h.ListCatalog)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
	r.Patch("/api/products/{id}", h.UpdateProduct)
	r.Delete("/api/products/{id}", h.RemoveProduct)
}

// urlParamID parses the {id} route parameter as a UUID
func urlParamID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// RegisterBusiness handles business registration
func (h *BusinessHandler) RegisterBusiness(w http.ResponseWriter, r *http.Request) {
	var req RegisterBusinessRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Business registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	business, err := h.businessService.RegisterBusiness(r.Context(), ownerID, req.Name, req.Category, req.City)
	if err != nil {
		h.logger.Error("Business registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register business")
		return
	}

	h.logger.Info("Business registered", zap.String("business_id", business.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, business)
}

// ListBusinesses handles filtered business listing
func (h *BusinessHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	filter := repository.BusinessFilter{}

	q := r.URL.Query()
	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}
	if city := q.Get("city"); city != "" {
		filter.City = &city
	}
	if verified := q.Get("verified"); verified != "" {
		v := verified == "true"
		filter.Verified = &v
	}

	// An owner query returns that user's business instead of the full list
	if owner := q.Get("owner_id"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid owner id")
			return
		}

		business, err := h.businessService.GetBusinessByOwner(r.Context(), ownerID)
		if err != nil {
			if errors.Is(err, service.ErrBusinessNotFound) {
				middleware.RespondWithError(w, http.StatusNotFound, "business not found")
				return
			}
			h.logger.Error("Owner lookup failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find business")
			return
		}

		middleware.RespondWithJSON(w, http.StatusOK, []*domain.Business{business})
		return
	}

	businesses, err := h.businessService.ListBusinesses(r.Context(), filter)
	if err != nil {
		h.logger.Error("Business listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list businesses")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, businesses)
}

// GetBusiness handles business point lookup
func (h *BusinessHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	business, err := h.businessService.GetBusiness(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("Business lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get business")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, business)
}

// UpdateBusiness handles partial business updates
func (h *BusinessHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req UpdateBusinessRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := repository.BusinessUpdate{
		Name:     req.Name,
		Category: req.Category,
		City:     req.City,
		Status:   req.Status,
		Verified: req.Verified,
	}

	if err := h.businessService.UpdateBusiness(r.Context(), id, update); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("Business update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update business")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles the derived statistics readout
func (h *BusinessHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	stats, err := h.businessService.GetStats(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("Stats computation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// AddLocation handles location creation for a business
func (h *BusinessHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req AddLocationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location := &domain.BusinessLocation{
		BusinessID: businessID,
		Address:    req.Address,
		City:       req.City,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		IsPrimary:  req.IsPrimary,
	}

	if err := h.businessService.AddLocation(r.Context(), location); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("Location creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add location")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, location)
}

// ListLocations handles location listing for a business
func (h *BusinessHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	locations, err := h.businessService.ListLocations(r.Context(), businessID)
	if err != nil {
		h.logger.Error("Location listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, locations)
}

// UpdateLocation handles partial location updates
func (h *BusinessHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var req UpdateLocationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := repository.LocationUpdate{
		Address:   req.Address,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsPrimary: req.IsPrimary,
	}

	if err := h.businessService.UpdateLocation(r.Context(), id, update); err != nil {
		h.logger.Error("Location update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update location")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveLocation handles location deletion
func (h *BusinessHandler) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	if err := h.businessService.RemoveLocation(r.Context(), id); err != nil {
		h.logger.Error("Location deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove location")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddProduct handles catalog item creation for a business
func (h *BusinessHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req AddProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &domain.Product{
		BusinessID: businessID,
		Name:       req.Name,
		Kind:       req.Kind,
		Category:   req.Category,
		Price:      req.Price,
		Featured:   req.Featured,
		Available:  req.Available,
	}

	if err := h.businessService.AddProduct(r.Context(), product); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "business not found")
			return
		}
		if errors.Is(err, service.ErrInvalidKind) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// ListCatalog handles catalog listing for a business
func (h *BusinessHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	products, err := h.businessService.ListCatalog(r.Context(), businessID)
	if err != nil {
		h.logger.Error("Catalog listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListProducts handles filtered catalog listing across businesses
func (h *BusinessHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{}

	q := r.URL.Query()
	if businessID := q.Get("business_id"); businessID != "" {
		id, err := uuid.Parse(businessID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid business id")
			return
		}
		filter.BusinessID = &id
	}
	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}
	if kind := q.Get("kind"); kind != "" {
		filter.Kind = &kind
	}
	if available := q.Get("available"); available != "" {
		v := available == "true"
		filter.Available = &v
	}
	if featured := q.Get("featured"); featured != "" {
		v := featured == "true"
		filter.Featured = &v
	}

	products, err := h.businessService.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct handles catalog item point lookup
func (h *BusinessHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.businessService.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateProduct handles partial catalog item updates
func (h *BusinessHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := repository.ProductUpdate{
		Name:      req.Name,
		Kind:      req.Kind,
		Category:  req.Category,
		Price:     req.Price,
		Featured:  req.Featured,
		Available: req.Available,
	}

	if err := h.businessService.UpdateProduct(r.Context(), id, update); err != nil {
		if errors.Is(err, service.ErrInvalidKind) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Product update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveProduct handles catalog item deletion
func (h *BusinessHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.businessService.RemoveProduct(r.Context(), id); err != nil {
		h.logger.Error("Product deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
