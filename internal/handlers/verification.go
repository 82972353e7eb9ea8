package handlers

import (
	"net/http"
	"strings"

	"eventbroker/internal/services"
)

// VerificationHandler serves ticket verification at the venue
type VerificationHandler struct {
	verification *services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verification *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

// Verify handles POST /api/verify-ticket. Accepts either a bare booking id
// or a scanned QR payload.
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID string `json:"booking_id"`
		QRData    string `json:"qr_data"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := req.QRData
	if input == "" {
		input = req.BookingID
	}
	if strings.TrimSpace(input) == "" {
		writeError(w, http.StatusBadRequest, "booking_id or qr_data is required")
		return
	}

	result, err := h.verification.Verify(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
