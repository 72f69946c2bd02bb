package repository

import (
	"context"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrClassNotFound    = dao.ErrClassNotFound
	ErrScheduleNotFound = dao.ErrScheduleNotFound
)

type ClassDAO interface {
	Insert(ctx context.Context, class dao.Class) (dao.Class, error)
	FindByID(ctx context.Context, id uint) (dao.Class, error)
	FindAll(ctx context.Context) ([]dao.Class, error)
	Update(ctx context.Context, class dao.Class) (dao.Class, error)
	Delete(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
	CountSchedules(ctx context.Context, classID uint) (int64, error)
	CountActiveEnrollments(ctx context.Context, classID uint) (int64, error)
	InsertSchedule(ctx context.Context, schedule dao.ClassSchedule) (dao.ClassSchedule, error)
	DeleteSchedule(ctx context.Context, id uint) error
	FindSchedulesByClassIDs(ctx context.Context, classIDs []uint) ([]dao.ClassSchedule, error)
}

type ClassRepository struct {
	dao ClassDAO
}

func NewClassRepository(dao ClassDAO) *ClassRepository {
	return &ClassRepository{
		dao: dao,
	}
}

func (r *ClassRepository) Create(ctx context.Context, class domain.Class) (domain.Class, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(class))
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id uint) (domain.Class, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	class := r.daoToDomain(found)

	count, err := r.dao.CountActiveEnrollments(ctx, id)
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.CountActiveEnrollments -> %w", err)
	}
	class.EnrolledCount = int(count)

	return class, nil
}

func (r *ClassRepository) FindAll(ctx context.Context) ([]domain.Class, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	classes := make([]domain.Class, len(found))
	for i, c := range found {
		classes[i] = r.daoToDomain(c)

		count, err := r.dao.CountActiveEnrollments(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("r.dao.CountActiveEnrollments -> %w", err)
		}
		classes[i].EnrolledCount = int(count)
	}

	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, class domain.Class) (domain.Class, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(class))
	if err != nil {
		return domain.Class{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete hard-deletes a class with no schedules or enrollments and
// soft-disables one that is still referenced. Returns true when the class
// was only deactivated.
func (r *ClassRepository) Delete(ctx context.Context, id uint) (deactivated bool, err error) {
	schedules, err := r.dao.CountSchedules(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountSchedules -> %w", err)
	}

	enrollments, err := r.dao.CountActiveEnrollments(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountActiveEnrollments -> %w", err)
	}

	if schedules > 0 || enrollments > 0 {
		if err := r.dao.Deactivate(ctx, id); err != nil {
			return false, fmt.Errorf("r.dao.Deactivate -> %w", err)
		}

		return true, nil
	}

	if err := r.dao.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return false, nil
}

func (r *ClassRepository) AddSchedule(ctx context.Context, schedule domain.ClassSchedule) (domain.ClassSchedule, error) {
	created, err := r.dao.InsertSchedule(ctx, dao.ClassSchedule{
		ClassID:   schedule.ClassID,
		Weekday:   schedule.Weekday,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		Location:  schedule.Location,
	})
	if err != nil {
		return domain.ClassSchedule{}, fmt.Errorf("r.dao.InsertSchedule -> %w", err)
	}

	return r.scheduleDaoToDomain(created), nil
}

func (r *ClassRepository) DeleteSchedule(ctx context.Context, id uint) error {
	if err := r.dao.DeleteSchedule(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteSchedule -> %w", err)
	}

	return nil
}

func (r *ClassRepository) FindSchedulesByClassIDs(ctx context.Context, classIDs []uint) ([]domain.ClassSchedule, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}

	found, err := r.dao.FindSchedulesByClassIDs(ctx, classIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSchedulesByClassIDs -> %w", err)
	}

	schedules := make([]domain.ClassSchedule, len(found))
	for i, s := range found {
		schedules[i] = r.scheduleDaoToDomain(s)
	}

	return schedules, nil
}

func (r *ClassRepository) daoToDomain(c dao.Class) domain.Class {
	class := domain.Class{
		ID:          c.ID,
		Name:        c.Name,
		Discipline:  c.Discipline,
		Description: c.Description,
		TrainerID:   c.TrainerID,
		MaxCapacity: c.MaxCapacity,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.Trainer != nil {
		class.TrainerName = c.Trainer.Name
	}

	for _, s := range c.Schedules {
		class.Schedules = append(class.Schedules, r.scheduleDaoToDomain(s))
	}

	return class
}

func (r *ClassRepository) domainToDao(c domain.Class) dao.Class {
	return dao.Class{
		ID:          c.ID,
		Name:        c.Name,
		Discipline:  c.Discipline,
		Description: c.Description,
		TrainerID:   c.TrainerID,
		MaxCapacity: c.MaxCapacity,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *ClassRepository) scheduleDaoToDomain(s dao.ClassSchedule) domain.ClassSchedule {
	return domain.ClassSchedule{
		ID:        s.ID,
		ClassID:   s.ClassID,
		Weekday:   s.Weekday,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Location:  s.Location,
	}
}
