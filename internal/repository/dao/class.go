package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

type Class struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Discipline  string `gorm:"not null"`
	Description string
	TrainerID   *uint    `gorm:"index"` // profile of a user with the treinador role
	Trainer     *Profile `gorm:"foreignKey:TrainerID"`
	MaxCapacity *int     // nil = unlimited; advisory, never enforced
	Active      bool     `gorm:"not null;default:true"`

	Schedules []ClassSchedule `gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ClassSchedule struct {
	ID      uint `gorm:"primaryKey"`
	ClassID uint `gorm:"not null;index"`

	Weekday   int    `gorm:"not null"` // 0 = Sunday
	StartTime string `gorm:"not null"` // HH:MM
	EndTime   string `gorm:"not null"` // HH:MM
	Location  string
}

type ClassDAO struct {
	db *gorm.DB
}

func NewClassDAO(db *gorm.DB) *ClassDAO {
	return &ClassDAO{
		db: db,
	}
}

func (d *ClassDAO) Insert(ctx context.Context, class Class) (Class, error) {
	result := d.db.WithContext(ctx).Create(&class)
	if result.Error != nil {
		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) FindByID(ctx context.Context, id uint) (Class, error) {
	var class Class

	result := d.db.WithContext(ctx).
		Preload("Schedules").
		Preload("Trainer").
		First(&class, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Class{}, ErrClassNotFound
		}

		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) FindAll(ctx context.Context) ([]Class, error) {
	var classes []Class

	result := d.db.WithContext(ctx).
		Preload("Schedules").
		Preload("Trainer").
		Order("name").
		Find(&classes)
	if result.Error != nil {
		return nil, result.Error
	}

	return classes, nil
}

func (d *ClassDAO) Update(ctx context.Context, class Class) (Class, error) {
	result := d.db.WithContext(ctx).
		Omit("Schedules", "Trainer").
		Save(&class)
	if result.Error != nil {
		return Class{}, result.Error
	}

	return class, nil
}

func (d *ClassDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

// Deactivate soft-disables a class that still has schedules or enrollments.
func (d *ClassDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Class{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

func (d *ClassDAO) CountSchedules(ctx context.Context, classID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&ClassSchedule{}).Where("class_id = ?", classID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountActiveEnrollments powers the advisory enrolled/max display.
func (d *ClassDAO) CountActiveEnrollments(ctx context.Context, classID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&ClassEnrollment{}).
		Where("class_id = ? AND status = ?", classID, "active").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ClassDAO) InsertSchedule(ctx context.Context, schedule ClassSchedule) (ClassSchedule, error) {
	result := d.db.WithContext(ctx).Create(&schedule)
	if result.Error != nil {
		return ClassSchedule{}, result.Error
	}

	return schedule, nil
}

func (d *ClassDAO) DeleteSchedule(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ClassSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (d *ClassDAO) FindSchedulesByClassIDs(ctx context.Context, classIDs []uint) ([]ClassSchedule, error) {
	var schedules []ClassSchedule

	result := d.db.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Order("weekday, start_time").
		Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}

	return schedules, nil
}
