package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// EventService handles event administration and public browsing. All writes
// are gated on the caller's email carrying the admin domain suffix, checked
// before anything touches storage.
type EventService struct {
	eventRepo   EventRepository
	storage     StorageService
	images      *ImageService
	cache       *EventCache
	adminDomain string
}

// NewEventService creates a new event service. storage, images and cache are
// optional; without storage media uploads are rejected, without cache reads
// go straight to the database.
func NewEventService(eventRepo EventRepository, storage StorageService, images *ImageService, cache *EventCache, adminDomain string) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		storage:     storage,
		images:      images,
		cache:       cache,
		adminDomain: adminDomain,
	}
}

// Authorize checks that the user may administer events.
func (s *EventService) Authorize(user *models.User) error {
	if user == nil {
		return models.ErrUnauthorized
	}
	if !user.IsAdmin(s.adminDomain) {
		return models.ErrUnauthorized
	}
	return nil
}

// CreateEvent creates a new event on behalf of an admin.
func (s *EventService) CreateEvent(ctx context.Context, user *models.User, req *models.EventCreateRequest) (*models.Event, error) {
	if err := s.Authorize(user); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, event.ID)
	return event, nil
}

// UpdateEvent replaces an event's fields on behalf of an admin. The capacity
// in the request overwrites the stored remaining capacity; the repository
// serializes the write against in-flight bookings.
func (s *EventService) UpdateEvent(ctx context.Context, user *models.User, id uuid.UUID, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := s.Authorize(user); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return event, nil
}

// DeleteEvent removes an event and, best effort, its media objects.
func (s *EventService) DeleteEvent(ctx context.Context, user *models.User, id uuid.UUID) error {
	if err := s.Authorize(user); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil {
		for _, mediaURL := range event.MediaURLs {
			if key, ok := KeyFromURL(s.storage, mediaURL); ok {
				if err := s.storage.Delete(ctx, key); err != nil {
					log.Printf("failed to delete media %s for event %s: %v", key, id, err)
				}
			}
		}
	}

	s.invalidate(ctx, id)
	return nil
}

// UploadMedia processes an uploaded image, stores it in object storage and
// appends the resulting URL to the event's ordered media list.
func (s *EventService) UploadMedia(ctx context.Context, user *models.User, id uuid.UUID, reader io.Reader, filename string) (*models.Event, error) {
	if err := s.Authorize(user); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	// Confirm the event exists before paying for the upload.
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	processed, contentType, size, err := s.images.Process(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	key := fmt.Sprintf("event-media/%s/%d%s", id, time.Now().UnixNano(), extensionFor(contentType, filename))
	mediaURL, err := s.storage.Upload(ctx, key, processed, contentType, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	event, err := s.eventRepo.AppendMediaURL(ctx, id, mediaURL)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return event, nil
}

// GetEvent returns a single event, served from cache when possible.
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if s.cache != nil {
		if event, ok := s.cache.GetEvent(ctx, id); ok {
			return event, nil
		}
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetEvent(ctx, event)
	}
	return event, nil
}

// ListUpcomingEvents returns upcoming events ordered by date, served from
// cache when possible.
func (s *EventService) ListUpcomingEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if s.cache != nil {
		if events, ok := s.cache.GetList(ctx, limit); ok {
			return events, nil
		}
	}

	events, err := s.eventRepo.List(ctx, true, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, limit, events)
	}
	return events, nil
}

func (s *EventService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	if ext := path.Ext(filename); ext != "" {
		return ext
	}
	return ".bin"
}
