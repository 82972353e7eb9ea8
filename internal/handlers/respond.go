package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eventbroker/internal/models"
	"eventbroker/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// writeServiceError maps service-layer errors onto HTTP statuses. Unknown
// errors are logged server-side and surfaced as an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var gatewayErr *services.RazorpayError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInsufficientCapacity):
		writeError(w, http.StatusConflict, "not enough tickets available")
	case errors.Is(err, models.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "an account with this email already exists")
	case errors.Is(err, models.ErrVerificationFailed):
		writeError(w, http.StatusBadRequest, "payment verification failed")
	case errors.As(err, &gatewayErr):
		log.Printf("payment gateway error: %v", err)
		writeError(w, http.StatusBadGateway, "payment gateway error")
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}
