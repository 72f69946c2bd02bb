package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

type ClassSession struct {
	ID      uint  `gorm:"primaryKey"`
	ClassID uint  `gorm:"not null;index"`
	Class   Class `gorm:"foreignKey:ClassID"`

	ScheduleID *uint          `gorm:"index"` // set when derived from a recurring slot
	Schedule   *ClassSchedule `gorm:"foreignKey:ScheduleID"`

	Date      time.Time `gorm:"not null;index"`
	StartTime string    `gorm:"not null"` // HH:MM
	EndTime   string    `gorm:"not null"` // HH:MM
	Status    string    `gorm:"not null;default:scheduled"`
	Notes     string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ClassAttendance holds at most one row per (session, enrollment) pair.
type ClassAttendance struct {
	ID           uint            `gorm:"primaryKey"`
	SessionID    uint            `gorm:"not null;uniqueIndex:idx_class_attendance_pair"`
	Session      ClassSession    `gorm:"foreignKey:SessionID"`
	EnrollmentID uint            `gorm:"not null;uniqueIndex:idx_class_attendance_pair"`
	Enrollment   ClassEnrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`

	Status   string `gorm:"not null"`
	Notes    string
	MarkedBy uint      `gorm:"not null"`
	MarkedAt time.Time `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session ClassSession) (ClassSession, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return ClassSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (ClassSession, error) {
	var session ClassSession

	result := d.db.WithContext(ctx).Preload("Class").First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ClassSession{}, ErrSessionNotFound
		}

		return ClassSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByClassID(ctx context.Context, classID uint, from, to time.Time) ([]ClassSession, error) {
	var sessions []ClassSession

	query := d.db.WithContext(ctx).Preload("Class").Where("class_id = ?", classID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	result := query.Order("date, start_time").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) Update(ctx context.Context, session ClassSession) (ClassSession, error) {
	result := d.db.WithContext(ctx).Omit("Class", "Schedule").Save(&session)
	if result.Error != nil {
		return ClassSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ClassSession{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (d *SessionDAO) FindAttendanceBySessionID(ctx context.Context, sessionID uint) ([]ClassAttendance, error) {
	var records []ClassAttendance

	result := d.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// UpsertAttendance applies a whole attendance sheet in one transaction:
// existing (session, enrollment) rows are updated in place, missing ones
// inserted. Partial application is not possible.
func (d *SessionDAO) UpsertAttendance(ctx context.Context, records []ClassAttendance) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			var existing ClassAttendance
			err := tx.Where("session_id = ? AND enrollment_id = ?", record.SessionID, record.EnrollmentID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Status = record.Status
				existing.Notes = record.Notes
				existing.MarkedBy = record.MarkedBy
				existing.MarkedAt = record.MarkedAt
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return nil
	})
}
