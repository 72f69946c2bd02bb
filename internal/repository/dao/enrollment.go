package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEnrollmentTarget   = errors.New("enrollment must reference exactly one of profile or athlete")
)

// ClassEnrollment binds a profile XOR an athlete to a class. The check
// constraint backs the invariant the domain layer enforces structurally.
type ClassEnrollment struct {
	ID      uint  `gorm:"primaryKey"`
	ClassID uint  `gorm:"not null;index"`
	Class   Class `gorm:"foreignKey:ClassID"`

	ProfileID *uint    `gorm:"index;check:chk_enrollment_target,(profile_id IS NULL) <> (athlete_id IS NULL)"`
	Profile   *Profile `gorm:"foreignKey:ProfileID"`
	AthleteID *uint    `gorm:"index"`
	Athlete   *Athlete `gorm:"foreignKey:AthleteID"`

	Status     string    `gorm:"not null;default:active"`
	EnrolledAt time.Time `gorm:"not null"`
}

type EnrollmentDAO struct {
	db *gorm.DB
}

func NewEnrollmentDAO(db *gorm.DB) *EnrollmentDAO {
	return &EnrollmentDAO{
		db: db,
	}
}

func (d *EnrollmentDAO) Insert(ctx context.Context, enrollment ClassEnrollment) (ClassEnrollment, error) {
	if (enrollment.ProfileID == nil) == (enrollment.AthleteID == nil) {
		return ClassEnrollment{}, ErrEnrollmentTarget
	}

	result := d.db.WithContext(ctx).Create(&enrollment)
	if result.Error != nil {
		return ClassEnrollment{}, result.Error
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) FindByID(ctx context.Context, id uint) (ClassEnrollment, error) {
	var enrollment ClassEnrollment

	result := d.db.WithContext(ctx).
		Preload("Class").
		Preload("Profile").
		Preload("Athlete").
		First(&enrollment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ClassEnrollment{}, ErrEnrollmentNotFound
		}

		return ClassEnrollment{}, result.Error
	}

	return enrollment, nil
}

func (d *EnrollmentDAO) FindByClassID(ctx context.Context, classID uint) ([]ClassEnrollment, error) {
	var enrollments []ClassEnrollment

	result := d.db.WithContext(ctx).
		Preload("Profile").
		Preload("Athlete").
		Where("class_id = ?", classID).
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

// FindActiveByClassID is the roster source: every active enrollment on the
// class, regardless of when it was created relative to any session date.
func (d *EnrollmentDAO) FindActiveByClassID(ctx context.Context, classID uint) ([]ClassEnrollment, error) {
	var enrollments []ClassEnrollment

	result := d.db.WithContext(ctx).
		Preload("Profile").
		Preload("Athlete").
		Where("class_id = ? AND status = ?", classID, "active").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) FindActiveByProfileID(ctx context.Context, profileID uint) ([]ClassEnrollment, error) {
	var enrollments []ClassEnrollment

	result := d.db.WithContext(ctx).
		Preload("Class").
		Preload("Profile").
		Where("profile_id = ? AND status = ?", profileID, "active").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) FindActiveByAthleteIDs(ctx context.Context, athleteIDs []uint) ([]ClassEnrollment, error) {
	if len(athleteIDs) == 0 {
		return nil, nil
	}

	var enrollments []ClassEnrollment

	result := d.db.WithContext(ctx).
		Preload("Class").
		Preload("Athlete").
		Where("athlete_id IN ? AND status = ?", athleteIDs, "active").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}

	return enrollments, nil
}

func (d *EnrollmentDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&ClassEnrollment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Re-setting an unchanged status reports zero affected rows on some
		// drivers; distinguish a missing row explicitly.
		var count int64
		if err := d.db.WithContext(ctx).Model(&ClassEnrollment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrEnrollmentNotFound
		}
	}

	return nil
}

func (d *EnrollmentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ClassEnrollment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}
