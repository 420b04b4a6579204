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
	"go.uber.org/zap"
)

// OrderResponse represents a created order in API responses
type OrderResponse struct {
	ID              string         `json:"id"`
	Total           string         `json:"total"`
	DisplayTotal    string         `json:"display_total"`
	Status          string         `json:"status"`
	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`
	CreatedAt       string         `json:"created_at"`
}

// CheckoutHandler handles HTTP requests for the checkout flow
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout routes behind the auth middleware
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/checkout", h.PlaceOrder)
		r.Get("/api/orders/{orderID}", h.GetOrder)
	})
}

// PlaceOrder submits the shipping form and turns the cart into an order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form service.ShippingForm

	if err := middleware.DecodeAndValidate(r, &form); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), currentUserID(r), form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			middleware.RespondWithError(w, http.StatusUnauthorized, "please sign in to check out")
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, "cart is empty")
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.StringFixed(2)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder returns one of the user's orders for the confirmation view
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.checkoutService.GetOrder(r.Context(), currentUserID(r), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			middleware.RespondWithError(w, http.StatusUnauthorized, "please sign in")
		case errors.Is(err, repository.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		default:
			h.logger.Error("Failed to get order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		Total:           order.Total.StringFixed(2),
		DisplayTotal:    currency.Format(order.Total),
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		CreatedAt:       order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
