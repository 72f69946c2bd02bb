package service

import (
	"context"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrClassNotFound    = repository.ErrClassNotFound
	ErrScheduleNotFound = repository.ErrScheduleNotFound
)

type ClassRepository interface {
	Create(ctx context.Context, class domain.Class) (domain.Class, error)
	FindByID(ctx context.Context, id uint) (domain.Class, error)
	FindAll(ctx context.Context) ([]domain.Class, error)
	Update(ctx context.Context, class domain.Class) (domain.Class, error)
	Delete(ctx context.Context, id uint) (bool, error)
	AddSchedule(ctx context.Context, schedule domain.ClassSchedule) (domain.ClassSchedule, error)
	DeleteSchedule(ctx context.Context, id uint) error
	FindSchedulesByClassIDs(ctx context.Context, classIDs []uint) ([]domain.ClassSchedule, error)
}

type CatalogService struct {
	repo ClassRepository
}

func NewCatalogService(repo ClassRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListClasses is readable by any caller; the class list doubles as public
// marketing data. Capacity shown as enrolled/max is advisory only.
func (s *CatalogService) ListClasses(ctx context.Context) ([]domain.Class, error) {
	classes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return classes, nil
}

func (s *CatalogService) GetClass(ctx context.Context, id uint) (domain.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return class, nil
}

func (s *CatalogService) AddClass(ctx context.Context, identity domain.Identity, class domain.Class) (domain.Class, error) {
	if !identity.IsAdmin() {
		return domain.Class{}, ErrPermissionDenied
	}

	created, err := s.repo.Create(ctx, class)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateClass(ctx context.Context, identity domain.Identity, class domain.Class) (domain.Class, error) {
	if !identity.IsAdmin() {
		return domain.Class{}, ErrPermissionDenied
	}

	existing, err := s.repo.FindByID(ctx, class.ID)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	class.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, class)
	if err != nil {
		return domain.Class{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteClass soft-disables a class that still has schedules or
// enrollments; otherwise it is removed outright. Returns true when the
// class was deactivated instead of deleted.
func (s *CatalogService) DeleteClass(ctx context.Context, identity domain.Identity, id uint) (bool, error) {
	if !identity.IsAdmin() {
		return false, ErrPermissionDenied
	}

	deactivated, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return deactivated, nil
}

// AddSchedule attaches a weekly slot. Overlapping slots are not rejected.
func (s *CatalogService) AddSchedule(ctx context.Context, identity domain.Identity, schedule domain.ClassSchedule) (domain.ClassSchedule, error) {
	if !identity.IsAdmin() {
		return domain.ClassSchedule{}, ErrPermissionDenied
	}

	if _, err := s.repo.FindByID(ctx, schedule.ClassID); err != nil {
		return domain.ClassSchedule{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.AddSchedule(ctx, schedule)
	if err != nil {
		return domain.ClassSchedule{}, fmt.Errorf("s.repo.AddSchedule -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) DeleteSchedule(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteSchedule(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSchedule -> %w", err)
	}

	return nil
}
