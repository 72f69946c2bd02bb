package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrSessionNotFound = repository.ErrSessionNotFound
	ErrInvalidStatus   = errors.New("invalid attendance status")
	ErrUnknownEnrollee = errors.New("enrollment does not belong to this session's class")
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.ClassSession) (domain.ClassSession, error)
	FindByID(ctx context.Context, id uint) (domain.ClassSession, error)
	FindByClassID(ctx context.Context, classID uint, from, to time.Time) ([]domain.ClassSession, error)
	Update(ctx context.Context, session domain.ClassSession) (domain.ClassSession, error)
	Delete(ctx context.Context, id uint) error
	FindAttendance(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error)
	SaveAttendance(ctx context.Context, records []domain.AttendanceRecord) error
}

type AttendanceEnrollmentRepository interface {
	FindActiveByClassID(ctx context.Context, classID uint) ([]domain.Enrollment, error)
}

// AttendanceMark is one line of a submitted attendance sheet.
type AttendanceMark struct {
	EnrollmentID uint
	Status       domain.AttendanceStatus
	Notes        string
}

type AttendanceService struct {
	sessions    SessionRepository
	enrollments AttendanceEnrollmentRepository
}

func NewAttendanceService(sessions SessionRepository, enrollments AttendanceEnrollmentRepository) *AttendanceService {
	return &AttendanceService{
		sessions:    sessions,
		enrollments: enrollments,
	}
}

func (s *AttendanceService) CreateSession(ctx context.Context, identity domain.Identity, session domain.ClassSession) (domain.ClassSession, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return domain.ClassSession{}, ErrPermissionDenied
	}

	if session.Status == "" {
		session.Status = domain.SessionScheduled
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("s.sessions.Create -> %w", err)
	}

	return created, nil
}

func (s *AttendanceService) ListSessions(ctx context.Context, classID uint, from, to time.Time) ([]domain.ClassSession, error) {
	sessions, err := s.sessions.FindByClassID(ctx, classID, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByClassID -> %w", err)
	}

	return sessions, nil
}

func (s *AttendanceService) UpdateSession(ctx context.Context, identity domain.Identity, session domain.ClassSession) (domain.ClassSession, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return domain.ClassSession{}, ErrPermissionDenied
	}

	existing, err := s.sessions.FindByID(ctx, session.ID)
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}
	session.CreatedAt = existing.CreatedAt

	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		return domain.ClassSession{}, fmt.Errorf("s.sessions.Update -> %w", err)
	}

	return updated, nil
}

func (s *AttendanceService) DeleteSession(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return ErrPermissionDenied
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.sessions.Delete -> %w", err)
	}

	return nil
}

// Roster merges the session's eligible participants (every active
// enrollment of the class, regardless of enrollment date) with stored
// attendance. Unmarked participants show the optimistic default: present.
func (s *AttendanceService) Roster(ctx context.Context, identity domain.Identity, sessionID uint) ([]domain.RosterEntry, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	enrollments, err := s.enrollments.FindActiveByClassID(ctx, session.ClassID)
	if err != nil {
		return nil, fmt.Errorf("s.enrollments.FindActiveByClassID -> %w", err)
	}

	records, err := s.sessions.FindAttendance(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindAttendance -> %w", err)
	}

	marked := make(map[uint]domain.AttendanceRecord, len(records))
	for _, record := range records {
		marked[record.EnrollmentID] = record
	}

	roster := make([]domain.RosterEntry, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry := domain.RosterEntry{
			EnrollmentID:    enrollment.ID,
			ParticipantName: enrollment.TargetName,
			Status:          domain.AttendancePresent,
		}
		if record, ok := marked[enrollment.ID]; ok {
			entry.Status = record.Status
			entry.Notes = record.Notes
			entry.Marked = true
		}
		roster = append(roster, entry)
	}

	return roster, nil
}

// Save applies a whole attendance sheet for one session as a single
// transactional batch upsert keyed by (session, enrollment): one call, one
// outcome. On success the stored set is re-fetched and returned.
func (s *AttendanceService) Save(ctx context.Context, identity domain.Identity, sessionID uint, marks []AttendanceMark) ([]domain.AttendanceRecord, error) {
	if !identity.HasAnyRole(domain.RoleAdmin, domain.RoleTrainer) {
		return nil, ErrPermissionDenied
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	enrollments, err := s.enrollments.FindActiveByClassID(ctx, session.ClassID)
	if err != nil {
		return nil, fmt.Errorf("s.enrollments.FindActiveByClassID -> %w", err)
	}

	eligible := make(map[uint]struct{}, len(enrollments))
	for _, enrollment := range enrollments {
		eligible[enrollment.ID] = struct{}{}
	}

	now := time.Now().UTC()
	records := make([]domain.AttendanceRecord, len(marks))
	for i, mark := range marks {
		if mark.Status == "" {
			mark.Status = domain.AttendancePresent
		}
		if !mark.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if _, ok := eligible[mark.EnrollmentID]; !ok {
			return nil, ErrUnknownEnrollee
		}

		records[i] = domain.AttendanceRecord{
			SessionID:    sessionID,
			EnrollmentID: mark.EnrollmentID,
			Status:       mark.Status,
			Notes:        mark.Notes,
			MarkedBy:     identity.UserID,
			MarkedAt:     now,
		}
	}

	if err := s.sessions.SaveAttendance(ctx, records); err != nil {
		return nil, fmt.Errorf("s.sessions.SaveAttendance -> %w", err)
	}

	saved, err := s.sessions.FindAttendance(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindAttendance -> %w", err)
	}

	return saved, nil
}
