package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrEnrollmentNotFound = dao.ErrEnrollmentNotFound
	ErrEnrollmentTarget   = dao.ErrEnrollmentTarget
)

type EnrollmentDAO interface {
	Insert(ctx context.Context, enrollment dao.ClassEnrollment) (dao.ClassEnrollment, error)
	FindByID(ctx context.Context, id uint) (dao.ClassEnrollment, error)
	FindByClassID(ctx context.Context, classID uint) ([]dao.ClassEnrollment, error)
	FindActiveByClassID(ctx context.Context, classID uint) ([]dao.ClassEnrollment, error)
	FindActiveByProfileID(ctx context.Context, profileID uint) ([]dao.ClassEnrollment, error)
	FindActiveByAthleteIDs(ctx context.Context, athleteIDs []uint) ([]dao.ClassEnrollment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type EnrollmentRepository struct {
	dao EnrollmentDAO
}

func NewEnrollmentRepository(dao EnrollmentDAO) *EnrollmentRepository {
	return &EnrollmentRepository{
		dao: dao,
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, classID uint, target domain.EnrollmentTarget, status domain.EnrollmentStatus) (domain.Enrollment, error) {
	profileID, athleteID := target.Columns()

	created, err := r.dao.Insert(ctx, dao.ClassEnrollment{
		ClassID:    classID,
		ProfileID:  profileID,
		AthleteID:  athleteID,
		Status:     string(status),
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (domain.Enrollment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *EnrollmentRepository) FindActiveByClassID(ctx context.Context, classID uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindActiveByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveByClassID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EnrollmentRepository) FindByClassID(ctx context.Context, classID uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByClassID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EnrollmentRepository) FindActiveByProfileID(ctx context.Context, profileID uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindActiveByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveByProfileID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EnrollmentRepository) FindActiveByAthleteIDs(ctx context.Context, athleteIDs []uint) ([]domain.Enrollment, error) {
	found, err := r.dao.FindActiveByAthleteIDs(ctx, athleteIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveByAthleteIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id uint, status domain.EnrollmentStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) daoToDomain(e dao.ClassEnrollment) (domain.Enrollment, error) {
	target, err := domain.NewEnrollmentTarget(e.ProfileID, e.AthleteID)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("enrollment %d: %w", e.ID, err)
	}

	enrollment := domain.Enrollment{
		ID:         e.ID,
		ClassID:    e.ClassID,
		ClassName:  e.Class.Name,
		Target:     target,
		TargetKind: target.Kind(),
		TargetID:   target.ID(),
		Status:     domain.EnrollmentStatus(e.Status),
		EnrolledAt: e.EnrolledAt,
	}

	switch {
	case e.Profile != nil:
		enrollment.TargetName = e.Profile.Name
	case e.Athlete != nil:
		enrollment.TargetName = e.Athlete.Name
	}

	return enrollment, nil
}

// daosToDomain drops rows that violate the target XOR invariant instead of
// failing the whole listing; such rows cannot exist through this API and
// only indicate out-of-band writes.
func (r *EnrollmentRepository) daosToDomain(rows []dao.ClassEnrollment) []domain.Enrollment {
	enrollments := make([]domain.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollment, err := r.daoToDomain(row)
		if err != nil {
			zap.L().Warn("skipping malformed enrollment row", zap.Uint("id", row.ID), zap.Error(err))
			continue
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments
}
