package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrEnrollmentNotFound = repository.ErrEnrollmentNotFound
	ErrPermissionDenied   = errors.New("permission denied")
)

type EnrollmentRepository interface {
	Create(ctx context.Context, classID uint, target domain.EnrollmentTarget, status domain.EnrollmentStatus) (domain.Enrollment, error)
	FindByID(ctx context.Context, id uint) (domain.Enrollment, error)
	FindByClassID(ctx context.Context, classID uint) ([]domain.Enrollment, error)
	FindActiveByClassID(ctx context.Context, classID uint) ([]domain.Enrollment, error)
	FindActiveByProfileID(ctx context.Context, profileID uint) ([]domain.Enrollment, error)
	FindActiveByAthleteIDs(ctx context.Context, athleteIDs []uint) ([]domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EnrollmentStatus) error
	Delete(ctx context.Context, id uint) error
}

type EnrollmentPersonRepository interface {
	FindProfileByUserID(ctx context.Context, userID uint) (domain.Profile, error)
	FindAthletesByGuardian(ctx context.Context, guardianProfileID uint) ([]domain.Athlete, error)
}

type EnrollmentService struct {
	repo       EnrollmentRepository
	personRepo EnrollmentPersonRepository
}

func NewEnrollmentService(repo EnrollmentRepository, personRepo EnrollmentPersonRepository) *EnrollmentService {
	return &EnrollmentService{
		repo:       repo,
		personRepo: personRepo,
	}
}

// ListForCaller returns every active enrollment belonging to the caller's
// own profile or to any athlete the caller guards, de-duplicated by
// enrollment id. The dedup is defensive: one enrollment row cannot
// logically satisfy both branches.
func (s *EnrollmentService) ListForCaller(ctx context.Context, identity domain.Identity) ([]domain.Enrollment, error) {
	profile, err := s.personRepo.FindProfileByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.personRepo.FindProfileByUserID -> %w", err)
	}

	own, err := s.repo.FindActiveByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveByProfileID -> %w", err)
	}

	athletes, err := s.personRepo.FindAthletesByGuardian(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("s.personRepo.FindAthletesByGuardian -> %w", err)
	}

	athleteIDs := make([]uint, len(athletes))
	for i, a := range athletes {
		athleteIDs[i] = a.ID
	}

	guarded, err := s.repo.FindActiveByAthleteIDs(ctx, athleteIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveByAthleteIDs -> %w", err)
	}

	seen := make(map[uint]struct{}, len(own)+len(guarded))
	combined := make([]domain.Enrollment, 0, len(own)+len(guarded))
	for _, e := range append(own, guarded...) {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		combined = append(combined, e)
	}

	return combined, nil
}

// Add inserts an active enrollment. Duplicate (class, target) pairs are
// intentionally not rejected; status filtering is the only notion of a
// "current" enrollment.
func (s *EnrollmentService) Add(ctx context.Context, identity domain.Identity, classID uint, target domain.EnrollmentTarget) (domain.Enrollment, error) {
	if !identity.IsAdmin() {
		return domain.Enrollment{}, ErrPermissionDenied
	}

	created, err := s.repo.Create(ctx, classID, target, domain.EnrollmentActive)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	// Re-fetch so the response carries class and participant names.
	enrollment, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) ListByClass(ctx context.Context, identity domain.Identity, classID uint) ([]domain.Enrollment, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	enrollments, err := s.repo.FindByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByClassID -> %w", err)
	}

	return enrollments, nil
}

// UpdateStatus is idempotent: setting the current status again succeeds
// without effect.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, identity domain.Identity, id uint, status domain.EnrollmentStatus) (domain.Enrollment, error) {
	if !identity.IsAdmin() {
		return domain.Enrollment{}, ErrPermissionDenied
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return enrollment, nil
}

func (s *EnrollmentService) Delete(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
