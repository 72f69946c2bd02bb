package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrProfileNotFound  = repository.ErrProfileNotFound
	ErrAthleteNotFound  = repository.ErrAthleteNotFound
	ErrGuardianNotFound = repository.ErrGuardianNotFound
)

type PersonRepository interface {
	CreateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FindProfileByID(ctx context.Context, id uint) (domain.Profile, error)
	FindProfileByUserID(ctx context.Context, userID uint) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	CreateAthlete(ctx context.Context, athlete domain.Athlete) (domain.Athlete, error)
	FindAthleteByID(ctx context.Context, id uint) (domain.Athlete, error)
	UpdateAthlete(ctx context.Context, athlete domain.Athlete) (domain.Athlete, error)
	DeleteAthlete(ctx context.Context, id uint) error
	ListAthletes(ctx context.Context) ([]domain.Athlete, error)
	CreateGuardian(ctx context.Context, link domain.AthleteGuardian) (domain.AthleteGuardian, error)
	DeleteGuardian(ctx context.Context, id uint) error
	FindAthletesByGuardian(ctx context.Context, guardianProfileID uint) ([]domain.Athlete, error)
	FindGuardiansByAthlete(ctx context.Context, athleteID uint) ([]domain.AthleteGuardian, error)
}

type PersonService struct {
	repo PersonRepository
}

func NewPersonService(repo PersonRepository) *PersonService {
	return &PersonService{
		repo: repo,
	}
}

// GetOwnProfile treats a missing profile as null rather than an error
// surface: callers render an empty member card.
func (s *PersonService) GetOwnProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.FindProfileByUserID -> %w", err)
	}

	return &profile, nil
}

func (s *PersonService) UpdateProfile(ctx context.Context, identity domain.Identity, profile domain.Profile) (domain.Profile, error) {
	existing, err := s.repo.FindProfileByID(ctx, profile.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindProfileByID -> %w", err)
	}

	// Owners edit themselves; anything else requires admin.
	if existing.UserID != identity.UserID && !identity.IsAdmin() {
		return domain.Profile{}, ErrPermissionDenied
	}

	profile.UserID = existing.UserID
	profile.CreatedAt = existing.CreatedAt
	updated, err := s.repo.UpdateProfile(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

func (s *PersonService) ListProfiles(ctx context.Context, identity domain.Identity) ([]domain.Profile, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListProfiles -> %w", err)
	}

	return profiles, nil
}

func (s *PersonService) CreateAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete) (domain.Athlete, error) {
	if !identity.IsAdmin() {
		return domain.Athlete{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateAthlete(ctx, athlete)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.CreateAthlete -> %w", err)
	}

	return created, nil
}

func (s *PersonService) UpdateAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete) (domain.Athlete, error) {
	if !identity.IsAdmin() {
		return domain.Athlete{}, ErrPermissionDenied
	}

	existing, err := s.repo.FindAthleteByID(ctx, athlete.ID)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.FindAthleteByID -> %w", err)
	}
	athlete.CreatedAt = existing.CreatedAt

	updated, err := s.repo.UpdateAthlete(ctx, athlete)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.UpdateAthlete -> %w", err)
	}

	return updated, nil
}

func (s *PersonService) DeleteAthlete(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteAthlete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteAthlete -> %w", err)
	}

	return nil
}

func (s *PersonService) ListAthletes(ctx context.Context, identity domain.Identity) ([]domain.Athlete, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	athletes, err := s.repo.ListAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAthletes -> %w", err)
	}

	return athletes, nil
}

// AddOwnAthlete is the guardian self-service flow: create the athlete
// record and link it to the caller's profile in one go.
func (s *PersonService) AddOwnAthlete(ctx context.Context, identity domain.Identity, athlete domain.Athlete, relationship domain.GuardianRelationship) (domain.Athlete, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, identity.UserID)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.FindProfileByUserID -> %w", err)
	}

	created, err := s.repo.CreateAthlete(ctx, athlete)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.CreateAthlete -> %w", err)
	}

	_, err = s.repo.CreateGuardian(ctx, domain.AthleteGuardian{
		GuardianID:   profile.ID,
		AthleteID:    created.ID,
		Relationship: relationship,
	})
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("s.repo.CreateGuardian -> %w", err)
	}

	return created, nil
}

func (s *PersonService) AddGuardian(ctx context.Context, identity domain.Identity, link domain.AthleteGuardian) (domain.AthleteGuardian, error) {
	if !identity.IsAdmin() {
		return domain.AthleteGuardian{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateGuardian(ctx, link)
	if err != nil {
		return domain.AthleteGuardian{}, fmt.Errorf("s.repo.CreateGuardian -> %w", err)
	}

	return created, nil
}

// RemoveGuardian unlinks a guardian without touching the athlete record.
func (s *PersonService) RemoveGuardian(ctx context.Context, identity domain.Identity, linkID uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteGuardian(ctx, linkID); err != nil {
		return fmt.Errorf("s.repo.DeleteGuardian -> %w", err)
	}

	return nil
}

func (s *PersonService) ListOwnAthletes(ctx context.Context, identity domain.Identity) ([]domain.Athlete, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.FindProfileByUserID -> %w", err)
	}

	athletes, err := s.repo.FindAthletesByGuardian(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAthletesByGuardian -> %w", err)
	}

	return athletes, nil
}

func (s *PersonService) ListGuardians(ctx context.Context, identity domain.Identity, athleteID uint) ([]domain.AthleteGuardian, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	links, err := s.repo.FindGuardiansByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGuardiansByAthlete -> %w", err)
	}

	return links, nil
}
