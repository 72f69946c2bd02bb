package repository

import (
	"context"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrRoleExists      = dao.ErrRoleExists
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	FindRolesByUserID(ctx context.Context, userID uint) ([]dao.UserRole, error)
	InsertRole(ctx context.Context, role dao.UserRole) (dao.UserRole, error)
	DeleteRole(ctx context.Context, userID uint, role string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	if err := r.dao.UpdatePassword(ctx, id, hashed); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) FindRoles(ctx context.Context, userID uint) ([]domain.Role, error) {
	rows, err := r.dao.FindRolesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRolesByUserID -> %w", err)
	}

	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, domain.Role(row.Role))
	}

	return roles, nil
}

func (r *UserRepository) GrantRole(ctx context.Context, userID uint, role domain.Role) error {
	_, err := r.dao.InsertRole(ctx, dao.UserRole{
		UserID: userID,
		Role:   string(role),
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) RevokeRole(ctx context.Context, userID uint, role domain.Role) error {
	if err := r.dao.DeleteRole(ctx, userID, string(role)); err != nil {
		return fmt.Errorf("r.dao.DeleteRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
