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

// AddToCartRequest represents the add-to-cart request payload
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the quantity update payload
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ID        string              `json:"id"`
	ProductID string              `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Product   CartProductResponse `json:"product"`
}

// CartProductResponse carries the joined product fields for a cart line
type CartProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Price        string `json:"price"`
	DisplayPrice string `json:"display_price"`
	ImageURL     string `json:"image_url"`
}

// CartResponse represents the full cart with derived totals
type CartResponse struct {
	Items        []CartItemResponse `json:"items"`
	Total        string             `json:"total"`
	DisplayTotal string             `json:"display_total"`
	ItemCount    int                `json:"item_count"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes behind the auth middleware
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Post("/", h.AddToCart)
		r.Delete("/", h.ClearCart)
		r.Patch("/{itemID}", h.UpdateQuantity)
		r.Delete("/{itemID}", h.RemoveFromCart)
	})
}

// GetCart returns the authenticated user's cart with derived totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	cart, err := h.cartService.Fetch(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

// AddToCart adds a product to the cart, merging into an existing line
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cart, err := h.cartService.Add(r.Context(), currentUserID(r), productID, quantity)
	if err != nil {
		h.respondCartError(w, err, "failed to add to cart")
		return
	}

	h.logger.Info("Product added to cart", zap.String("product_id", productID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

// UpdateQuantity sets a cart line's quantity; below 1 removes the line
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), currentUserID(r), itemID, req.Quantity)
	if err != nil {
		h.respondCartError(w, err, "failed to update cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

// RemoveFromCart deletes a single cart line
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart item ID")
		return
	}

	cart, err := h.cartService.Remove(r.Context(), currentUserID(r), itemID)
	if err != nil {
		h.respondCartError(w, err, "failed to remove from cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

// ClearCart deletes every line of the user's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), currentUserID(r)); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *CartHandler) respondCartError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		middleware.RespondWithError(w, http.StatusUnauthorized, "please sign in to use the cart")
	case errors.Is(err, service.ErrInvalidQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, "quantity must be at least 1")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrCartItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
	default:
		h.logger.Error("Cart operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func toCartResponse(cart *service.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
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

	return CartResponse{
		Items:        items,
		Total:        cart.Total.StringFixed(2),
		DisplayTotal: currency.Format(cart.Total),
		ItemCount:    cart.ItemCount,
	}
}

// currentUserID extracts the authenticated user from the request context.
// uuid.Nil means no authenticated identity; the service layer turns that
// into its auth-required guard.
func currentUserID(r *http.Request) uuid.UUID {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil
	}

	return userID
}
