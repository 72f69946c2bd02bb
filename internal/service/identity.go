package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var ErrInvalidRole = errors.New("invalid role")

type RoleRepository interface {
	FindRoles(ctx context.Context, userID uint) ([]domain.Role, error)
	GrantRole(ctx context.Context, userID uint, role domain.Role) error
	RevokeRole(ctx context.Context, userID uint, role domain.Role) error
}

// IdentityService resolves an authenticated user id into an Identity with
// its role set. Role lookups are cached per user until explicitly
// invalidated (role grant/revoke, signup).
type IdentityService struct {
	repo RoleRepository

	mu    sync.RWMutex
	cache map[uint][]domain.Role
}

func NewIdentityService(repo RoleRepository) *IdentityService {
	return &IdentityService{
		repo:  repo,
		cache: make(map[uint][]domain.Role),
	}
}

// Resolve returns the caller's identity. A role lookup failure degrades to
// an empty role set (visitor) rather than propagating: access must fail
// closed, never open.
func (s *IdentityService) Resolve(ctx context.Context, userID uint) domain.Identity {
	s.mu.RLock()
	roles, ok := s.cache[userID]
	s.mu.RUnlock()

	if !ok {
		var err error
		roles, err = s.repo.FindRoles(ctx, userID)
		if err != nil {
			zap.L().Warn("role lookup failed, treating caller as visitor",
				zap.Uint("user_id", userID),
				zap.Error(err))

			return domain.Identity{UserID: userID, Authenticated: true}
		}

		s.mu.Lock()
		s.cache[userID] = roles
		s.mu.Unlock()
	}

	return domain.Identity{
		UserID:        userID,
		Authenticated: true,
		Roles:         roles,
	}
}

// Invalidate drops the cached role set for a user. Called whenever roles
// change or the user's session ends.
func (s *IdentityService) Invalidate(userID uint) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

func (s *IdentityService) GrantRole(ctx context.Context, userID uint, role domain.Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	if err := s.repo.GrantRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrRoleExists) {
			// Granting an already-held role is a no-op.
			return nil
		}

		return fmt.Errorf("s.repo.GrantRole -> %w", err)
	}

	s.Invalidate(userID)

	return nil
}

func (s *IdentityService) RevokeRole(ctx context.Context, userID uint, role domain.Role) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	if err := s.repo.RevokeRole(ctx, userID, role); err != nil {
		return fmt.Errorf("s.repo.RevokeRole -> %w", err)
	}

	s.Invalidate(userID)

	return nil
}

func (s *IdentityService) ListRoles(ctx context.Context, userID uint) ([]domain.Role, error) {
	roles, err := s.repo.FindRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRoles -> %w", err)
	}

	return roles, nil
}
