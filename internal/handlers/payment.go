package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"eventbroker/internal/services"
)

// PaymentHandler serves gateway order creation and payment confirmation
type PaymentHandler struct {
	payments *services.PaymentService
	gateway  services.PaymentGateway
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *services.PaymentService, gateway services.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{payments: payments, gateway: gateway}
}

// CreateOrder handles POST /api/create-order. The created gateway order is
// linked to the booking so VerifyPayment can locate it later.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount    float64 `json:"amount"`
		Currency  string  `json:"currency"`
		BookingID string  `json:"bookingId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}
	if req.BookingID == "" {
		writeError(w, http.StatusBadRequest, "bookingId is required")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookingId")
		return
	}

	order, err := h.payments.CreateOrderForBooking(r.Context(), bookingID, req.Amount, req.Currency)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order": map[string]interface{}{
			"id":       order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
		},
	})
}

// VerifyPayment handles POST /api/verify-payment. The signature is verified
// server-side before any record changes.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
		return
	}

	booking, err := h.payments.ConfirmPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "payment verified",
		"booking": booking,
	})
}

// CreateRawOrder handles POST /api/rpc/create-razorpay-order, a thin
// authenticated wrapper over the gateway's order endpoint.
func (h *PaymentHandler) CreateRawOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Receipt  string  `json:"receipt"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Currency, req.Receipt)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orderId":  order.ID,
		"currency": order.Currency,
		"amount":   order.Amount,
	})
}
