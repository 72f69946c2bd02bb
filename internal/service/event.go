package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidVisibility = errors.New("invalid event visibility")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// normalize clears target roles for every visibility except private. A
// private event keeps whatever target list was given, including an empty
// one, which renders it visible to nobody but admins.
func (s *EventService) normalize(event domain.Event) (domain.Event, error) {
	if !event.Type.IsValid() {
		return domain.Event{}, ErrInvalidEventType
	}
	if !event.Visibility.IsValid() {
		return domain.Event{}, ErrInvalidVisibility
	}

	if event.Visibility != domain.VisibilityPrivate {
		event.TargetRoles = nil
	}

	return event, nil
}

func (s *EventService) Create(ctx context.Context, identity domain.Identity, event domain.Event) (domain.Event, error) {
	if !identity.IsAdmin() {
		return domain.Event{}, ErrPermissionDenied
	}

	event, err := s.normalize(event)
	if err != nil {
		return domain.Event{}, err
	}
	event.CreatedBy = identity.UserID

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) Update(ctx context.Context, identity domain.Identity, event domain.Event) (domain.Event, error) {
	if !identity.IsAdmin() {
		return domain.Event{}, ErrPermissionDenied
	}

	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err = s.normalize(event)
	if err != nil {
		return domain.Event{}, err
	}
	event.CreatedBy = existing.CreatedBy
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ListVisible returns the events the caller may see, filtered by the
// event's visibility policy against the caller's role set.
func (s *EventService) ListVisible(ctx context.Context, identity domain.Identity, from, to time.Time) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	visible := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.VisibleTo(identity) {
			visible = append(visible, event)
		}
	}

	return visible, nil
}
