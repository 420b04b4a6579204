package transport

import (
	"errors"
	"net/http"

	"maison-elite/internal/currency"
	"maison-elite/internal/middleware"
	"maison-elite/internal/repository"
	"maison-elite/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WishlistRequest represents the add/toggle wishlist payload
type WishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// WishlistItemResponse represents one wishlist entry in API responses
type WishlistItemResponse struct {
	ID        string              `json:"id"`
	ProductID string              `json:"product_id"`
	Product   CartProductResponse `json:"product"`
}

// WishlistResponse represents the full wishlist
type WishlistResponse struct {
	Items     []WishlistItemResponse `json:"items"`
	ItemCount int                    `json:"item_count"`
}

// ToggleWishlistResponse reports the membership after a toggle
type ToggleWishlistResponse struct {
	Added    bool             `json:"added"`
	Wishlist WishlistResponse `json:"wishlist"`
}

// WishlistHandler handles HTTP requests for wishlist operations
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers all wishlist routes behind the auth middleware
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetWishlist)
		r.Post("/", h.AddToWishlist)
		r.Post("/toggle", h.ToggleWishlist)
		r.Get("/{productID}", h.CheckWishlist)
		r.Delete("/{productID}", h.RemoveFromWishlist)
	})
}

// GetWishlist returns the authenticated user's wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	wishlist, err := h.wishlistService.Fetch(r.Context(), currentUserID(r))
	if err != nil {
		h.logger.Error("Failed to fetch wishlist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toWishlistResponse(wishlist))
}

// AddToWishlist saves a product to the wishlist. An already-present
// product is reported as a conflict notice, not a server fault.
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.decodeProductID(w, r)
	if !ok {
		return
	}

	wishlist, err := h.wishlistService.Add(r.Context(), currentUserID(r), productID)
	if err != nil {
		h.respondWishlistError(w, err, "failed to add to wishlist")
		return
	}

	h.logger.Info("Product added to wishlist", zap.String("product_id", productID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, toWishlistResponse(wishlist))
}

// ToggleWishlist adds the product if absent, removes it if present
func (h *WishlistHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.decodeProductID(w, r)
	if !ok {
		return
	}

	added, wishlist, err := h.wishlistService.Toggle(r.Context(), currentUserID(r), productID)
	if err != nil {
		h.respondWishlistError(w, err, "failed to toggle wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ToggleWishlistResponse{
		Added:    added,
		Wishlist: toWishlistResponse(wishlist),
	})
}

// CheckWishlist reports whether a product is in the user's wishlist
func (h *WishlistHandler) CheckWishlist(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	present, err := h.wishlistService.Contains(r.Context(), currentUserID(r), productID)
	if err != nil {
		h.logger.Error("Failed to check wishlist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"in_wishlist": present})
}

// RemoveFromWishlist deletes a product from the wishlist
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	wishlist, err := h.wishlistService.Remove(r.Context(), currentUserID(r), productID)
	if err != nil {
		h.respondWishlistError(w, err, "failed to remove from wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toWishlistResponse(wishlist))
}

func (h *WishlistHandler) decodeProductID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req WishlistRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Wishlist validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return uuid.Nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return uuid.Nil, false
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return uuid.Nil, false
	}

	return productID, true
}

func (h *WishlistHandler) respondWishlistError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		middleware.RespondWithError(w, http.StatusUnauthorized, "please sign in to use the wishlist")
	case errors.Is(err, repository.ErrAlreadyInWishlist):
		middleware.RespondWithError(w, http.StatusConflict, "product is already in your wishlist")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrWishlistItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product is not in your wishlist")
	default:
		h.logger.Error("Wishlist operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func toWishlistResponse(wishlist *service.Wishlist) WishlistResponse {
	items := make([]WishlistItemResponse, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		items = append(items, WishlistItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Product: CartProductResponse{
				ID:           item.Product.ID.String(),
				Name:         item.Product.Name,
				Slug:         item.Product.Slug,
				Price:        item.Product.Price.StringFixed(2),
				DisplayPrice: currency.Format(item.Product.Price),
				ImageURL:     item.Product.ImageURL,
			},
		})
	}

	return WishlistResponse{
		Items:     items,
		ItemCount: wishlist.ItemCount,
	}
}
