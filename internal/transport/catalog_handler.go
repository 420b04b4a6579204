package transport

import (
	"errors"
	"net/http"

	"maison-elite/internal/currency"
	"maison-elite/internal/domain"
	"maison-elite/internal/middleware"
	"maison-elite/internal/repository"
	"maison-elite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductResponse represents a catalog product in API responses
type ProductResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug"`
	Description          string   `json:"description,omitempty"`
	Price                string   `json:"price"`
	DisplayPrice         string   `json:"display_price"`
	OriginalPrice        string   `json:"original_price,omitempty"`
	DisplayOriginalPrice string   `json:"display_original_price,omitempty"`
	CategoryID           string   `json:"category_id,omitempty"`
	ImageURL             string   `json:"image_url,omitempty"`
	Images               []string `json:"images"`
	IsNew                bool     `json:"is_new"`
	IsFeatured           bool     `json:"is_featured"`
	Stock                int      `json:"stock"`
	Dimensions           string   `json:"dimensions,omitempty"`
	Materials            string   `json:"materials,omitempty"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Featured    bool   `json:"featured"`
}

// SaveProductRequest represents the admin create/update product payload
type SaveProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Slug          string   `json:"slug" validate:"required"`
	Description   string   `json:"description"`
	Price         string   `json:"price" validate:"required"`
	OriginalPrice string   `json:"original_price"`
	CategoryID    string   `json:"category_id"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	IsNew         bool     `json:"is_new"`
	IsFeatured    bool     `json:"is_featured"`
	Stock         int      `json:"stock" validate:"min=0"`
	Dimensions    string   `json:"dimensions"`
	Materials     string   `json:"materials"`
}

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes and the admin
// mutations behind auth + admin middleware.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{slug}", h.GetProduct)
	r.Get("/api/collections", h.ListCollections)

	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Post("/", h.CreateProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// ListProducts returns the catalog. The featured and new filters are
// applied to the same snapshot; they never trigger a second query.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.Products(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	switch r.URL.Query().Get("filter") {
	case "featured":
		products = service.FeaturedProducts(products)
	case "new":
		products = service.NewProducts(products)
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"products": responses})
}

// GetProduct returns a single product by slug; absence is a 404, not a fault
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalogService.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.String("slug", slug), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// ListCollections returns all collections, optionally only the featured ones
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.catalogService.Collections(r.Context())
	if err != nil {
		h.logger.Error("Failed to list collections", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list collections")
		return
	}

	if r.URL.Query().Get("featured") == "true" {
		collections = service.FeaturedCollections(collections)
	}

	responses := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		responses = append(responses, CollectionResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			Featured:    c.Featured,
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"collections": responses})
}

// CreateProduct adds a product to the catalog (admin only)
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, "product with this slug already exists")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct updates a catalog product (admin only)
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = id

	if err := h.catalogService.UpdateProduct(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProduct removes a catalog product (admin only)
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *CatalogHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	var req SaveProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must be a non-negative decimal")
		return nil, false
	}

	product := &domain.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       price,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		IsNew:       req.IsNew,
		IsFeatured:  req.IsFeatured,
		Stock:       req.Stock,
		Dimensions:  req.Dimensions,
		Materials:   req.Materials,
	}

	if req.OriginalPrice != "" {
		originalPrice, err := decimal.NewFromString(req.OriginalPrice)
		if err != nil || originalPrice.IsNegative() {
			middleware.RespondWithError(w, http.StatusBadRequest, "original price must be a non-negative decimal")
			return nil, false
		}
		product.OriginalPrice = &originalPrice
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
			return nil, false
		}
		product.CategoryID = &categoryID
	}

	return product, true
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.StringFixed(2),
		DisplayPrice: currency.Format(p.Price),
		ImageURL:     p.ImageURL,
		Images:       p.Images,
		IsNew:        p.IsNew,
		IsFeatured:   p.IsFeatured,
		Stock:        p.Stock,
		Dimensions:   p.Dimensions,
		Materials:    p.Materials,
	}

	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.OriginalPrice != nil {
		resp.OriginalPrice = p.OriginalPrice.StringFixed(2)
		resp.DisplayOriginalPrice = currency.Format(*p.OriginalPrice)
	}
	if p.CategoryID != nil {
		resp.CategoryID = p.CategoryID.String()
	}

	return resp
}
