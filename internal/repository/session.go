package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrSessionNotFound    = dao.ErrSessionNotFound
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
)

type SessionDAO interface {
	Insert(ctx context.Context, session dao.ClassSession) (dao.ClassSession, error)
	FindByID(ctx context.Context, id uint) (dao.ClassSession, error)
	FindByClassID(ctx context.Context, classID uint, from, to time.Time) ([]dao.ClassSession, error)
	Update(ctx context.Context, session dao.ClassSession) (dao.ClassSession, error)
	Delete(ctx context.Context, id uint) error
	FindAttendanceBySessionID(ctx context.Context, sessionID uint) ([]dao.ClassAttendance, error)
	UpsertAttendance(ctx context.Context, records []dao.ClassAttendance) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.ClassSession) (domain.ClassSession, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(session))
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.ClassSession, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) FindByClassID(ctx context.Context, classID uint, from, to time.Time) ([]domain.ClassSession, error) {
	found, err := r.dao.FindByClassID(ctx, classID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByClassID -> %w", err)
	}

	sessions := make([]domain.ClassSession, len(found))
	for i, s := range found {
		sessions[i] = r.daoToDomain(s)
	}

	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, session domain.ClassSession) (domain.ClassSession, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(session))
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SessionRepository) FindAttendance(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error) {
	found, err := r.dao.FindAttendanceBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendanceBySessionID -> %w", err)
	}

	records := make([]domain.AttendanceRecord, len(found))
	for i, a := range found {
		records[i] = domain.AttendanceRecord{
			ID:           a.ID,
			SessionID:    a.SessionID,
			EnrollmentID: a.EnrollmentID,
			Status:       domain.AttendanceStatus(a.Status),
			Notes:        a.Notes,
			MarkedBy:     a.MarkedBy,
			MarkedAt:     a.MarkedAt,
		}
	}

	return records, nil
}

// SaveAttendance upserts the whole sheet atomically, keyed by
// (session, enrollment).
func (r *SessionRepository) SaveAttendance(ctx context.Context, records []domain.AttendanceRecord) error {
	rows := make([]dao.ClassAttendance, len(records))
	for i, record := range records {
		rows[i] = dao.ClassAttendance{
			SessionID:    record.SessionID,
			EnrollmentID: record.EnrollmentID,
			Status:       string(record.Status),
			Notes:        record.Notes,
			MarkedBy:     record.MarkedBy,
			MarkedAt:     record.MarkedAt,
		}
	}

	if err := r.dao.UpsertAttendance(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.UpsertAttendance -> %w", err)
	}

	return nil
}

func (r *SessionRepository) daoToDomain(s dao.ClassSession) domain.ClassSession {
	return domain.ClassSession{
		ID:         s.ID,
		ClassID:    s.ClassID,
		ClassName:  s.Class.Name,
		ScheduleID: s.ScheduleID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     domain.SessionStatus(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *SessionRepository) domainToDao(s domain.ClassSession) dao.ClassSession {
	return dao.ClassSession{
		ID:         s.ID,
		ClassID:    s.ClassID,
		ScheduleID: s.ScheduleID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     string(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
