package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"eventbroker/internal/middleware"
	"eventbroker/internal/models"
	"eventbroker/internal/services"
)

// BookingHandler serves the booking flow: create, view with QR, list mine
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /api/events/{id}/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.BookingCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.EventID = eventID
	req.UserID = user.ID
	if req.UserName == "" {
		req.UserName = user.Name
	}
	if req.UserEmail == "" {
		req.UserEmail = user.Email
	}

	booking, err := h.bookings.BookTickets(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"booking": booking,
	})
}

// Get handles GET /api/bookings/{id}. The QR payload and image URL ride
// along for the confirmation page.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"booking":      booking,
		"qr_payload":   services.BuildQRPayload(booking),
		"qr_image_url": services.QRImageURL(booking),
	})
}

// ListMine handles GET /api/my/bookings
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	bookings, err := h.bookings.ListUserBookings(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"bookings": bookings,
	})
}
