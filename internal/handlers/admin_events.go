package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"eventbroker/internal/middleware"
	"eventbroker/internal/models"
	"eventbroker/internal/services"
)

// maxUploadSize caps multipart uploads before the image pipeline sees them.
const maxUploadSize = 10 << 20

// AdminEventHandler serves event administration
type AdminEventHandler struct {
	events *services.EventService
}

// NewAdminEventHandler creates a new admin event handler
func NewAdminEventHandler(events *services.EventService) *AdminEventHandler {
	return &AdminEventHandler{events: events}
}

// Create handles POST /api/admin/events
func (h *AdminEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.CreateEvent(r.Context(), user, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// Update handles PUT /api/admin/events/{id}. The capacity in the request
// replaces the remaining capacity.
func (h *AdminEventHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.UpdateEvent(r.Context(), user, id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}

// Delete handles DELETE /api/admin/events/{id}
func (h *AdminEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.events.DeleteEvent(r.Context(), user, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// UploadMedia handles POST /api/admin/events/{id}/media (multipart field
// "media").
func (h *AdminEventHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		writeError(w, http.StatusBadRequest, "media file is required")
		return
	}
	defer file.Close()

	event, err := h.events.UploadMedia(r.Context(), user, id, file, header.Filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}
