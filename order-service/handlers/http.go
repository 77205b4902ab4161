package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/hungersaviour/order-system/order-service/application"
	"github.com/hungersaviour/order-system/order-service/domain"
)

// OrderHandlers contains the order HTTP handlers
type OrderHandlers struct {
	createOrder       *application.CreateOrder
	getOrder          *application.GetOrder
	updateOrderStatus *application.UpdateOrderStatus
	cancelOrder       *application.CancelOrder
	listOrders        *application.ListOrders
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	createOrder *application.CreateOrder,
	getOrder *application.GetOrder,
	updateOrderStatus *application.UpdateOrderStatus,
	cancelOrder *application.CancelOrder,
	listOrders *application.ListOrders,
) *OrderHandlers {
	return &OrderHandlers{
		createOrder:       createOrder,
		getOrder:          getOrder,
		updateOrderStatus: updateOrderStatus,
		cancelOrder:       cancelOrder,
		listOrders:        listOrders,
	}
}

// CreateOrder handles order placement requests
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createOrder.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetOrder handles order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	response, err := h.getOrder.Execute(r.Context(), &application.GetOrderQuery{
		OrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// UpdateOrderStatus handles status change requests
func (h *OrderHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.updateOrderStatus.Execute(r.Context(), &application.UpdateOrderStatusCommand{
		OrderID: chi.URLParam(r, "id"),
		Status:  body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// CancelOrder handles cancellation requests
func (h *OrderHandlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	response, err := h.cancelOrder.Execute(r.Context(), &application.CancelOrderCommand{
		OrderID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ListUserOrders handles the per-user order listing
func (h *OrderHandlers) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	response, err := h.listOrders.ByUser(r.Context(), &application.ListUserOrdersQuery{
		UserID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ListRestaurantOrders handles the per-restaurant order listing
func (h *OrderHandlers) ListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	response, err := h.listOrders.ByRestaurant(r.Context(), &application.ListRestaurantOrdersQuery{
		RestaurantID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Post("/{id}/cancel", h.CancelOrder)
	})
	r.Get("/users/{id}/orders", h.ListUserOrders)
	r.Get("/restaurants/{id}/orders", h.ListRestaurantOrders)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the orchestration error taxonomy onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var (
		invalidRequest    *domain.InvalidRequestError
		depNotFound       *domain.DependencyNotFoundError
		orderNotFound     *domain.OrderNotFoundError
		invalidTransition *domain.InvalidTransitionError
		depUnavailable    *domain.DependencyUnavailableError
		paymentFailed     *domain.PaymentFailedError
	)

	switch {
	case errors.As(err, &invalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &depNotFound), errors.As(err, &orderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &invalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &paymentFailed):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.As(err, &depUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
