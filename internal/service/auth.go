package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	GrantRole(ctx context.Context, userID uint, role domain.Role) error
}

type AuthProfileRepository interface {
	CreateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

type AuthService struct {
	repo        AuthUserRepository
	profileRepo AuthProfileRepository
}

func NewAuthService(repo AuthUserRepository, profileRepo AuthProfileRepository) *AuthService {
	return &AuthService{
		repo:        repo,
		profileRepo: profileRepo,
	}
}

// Signup creates the account, its member profile and the default generic
// role. Elevated roles are only ever granted by an admin afterwards.
func (s *AuthService) Signup(ctx context.Context, user domain.User, name string) (domain.User, domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, domain.Profile{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, domain.Profile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	profile, err := s.profileRepo.CreateProfile(ctx, domain.Profile{
		UserID: created.ID,
		Name:   name,
	})
	if err != nil {
		return domain.User{}, domain.Profile{}, fmt.Errorf("s.profileRepo.CreateProfile -> %w", err)
	}

	if err := s.repo.GrantRole(ctx, created.ID, domain.RoleUser); err != nil {
		return domain.User{}, domain.Profile{}, fmt.Errorf("s.repo.GrantRole -> %w", err)
	}

	return created, profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}
