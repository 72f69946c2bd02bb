package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

type fakeSessionRepo struct {
	sessions   map[uint]domain.ClassSession
	attendance map[uint]map[uint]domain.AttendanceRecord // session -> enrollment -> record
	saveCalls  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:   map[uint]domain.ClassSession{},
		attendance: map[uint]map[uint]domain.AttendanceRecord{},
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, session domain.ClassSession) (domain.ClassSession, error) {
	session.ID = uint(len(f.sessions) + 1)
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.ClassSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.ClassSession{}, repository.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) FindByClassID(_ context.Context, classID uint, _, _ time.Time) ([]domain.ClassSession, error) {
	var result []domain.ClassSession
	for _, s := range f.sessions {
		if s.ClassID == classID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session domain.ClassSession) (domain.ClassSession, error) {
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uint) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) FindAttendance(_ context.Context, sessionID uint) ([]domain.AttendanceRecord, error) {
	var result []domain.AttendanceRecord
	for _, record := range f.attendance[sessionID] {
		result = append(result, record)
	}
	return result, nil
}

// SaveAttendance mimics the transactional batch upsert: all records land
// keyed by (session, enrollment), overwriting previous marks.
func (f *fakeSessionRepo) SaveAttendance(_ context.Context, records []domain.AttendanceRecord) error {
	f.saveCalls++
	for _, record := range records {
		bySession, ok := f.attendance[record.SessionID]
		if !ok {
			bySession = map[uint]domain.AttendanceRecord{}
			f.attendance[record.SessionID] = bySession
		}
		record.ID = record.EnrollmentID // stable fake id
		bySession[record.EnrollmentID] = record
	}
	return nil
}

type fakeAttendanceEnrollments struct {
	byClass map[uint][]domain.Enrollment
}

func (f *fakeAttendanceEnrollments) FindActiveByClassID(_ context.Context, classID uint) ([]domain.Enrollment, error) {
	return f.byClass[classID], nil
}

func attendanceFixture() (*AttendanceService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	sessions.sessions[1] = domain.ClassSession{ID: 1, ClassID: 10, Status: domain.SessionScheduled}

	enrollments := &fakeAttendanceEnrollments{byClass: map[uint][]domain.Enrollment{
		10: {
			{ID: 1, ClassID: 10, TargetName: "Ana"},
			{ID: 2, ClassID: 10, TargetName: "Rui"},
		},
	}}

	return NewAttendanceService(sessions, enrollments), sessions
}

func TestAttendanceServiceUpdateSession(t *testing.T) {
	trainer := domain.Identity{UserID: 3, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}

	createdAt := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	sessions := newFakeSessionRepo()
	sessions.sessions[1] = domain.ClassSession{
		ID:        1,
		ClassID:   10,
		Status:    domain.SessionScheduled,
		CreatedAt: createdAt,
	}

	svc := NewAttendanceService(sessions, &fakeAttendanceEnrollments{})

	// The request payload never carries the creation timestamp; the stored
	// one must survive the update.
	updated, err := svc.UpdateSession(context.Background(), trainer, domain.ClassSession{
		ID:      1,
		ClassID: 10,
		Status:  domain.SessionCancelled,
		Notes:   "trainer ill",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCancelled, updated.Status)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, createdAt, sessions.sessions[1].CreatedAt)
}

func TestAttendanceServiceRoster(t *testing.T) {
	trainer := domain.Identity{UserID: 3, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}
	athlete := domain.Identity{UserID: 4, Authenticated: true, Roles: []domain.Role{domain.RoleAthlete}}

	t.Run("unmarked enrollees default to present", func(t *testing.T) {
		svc, sessions := attendanceFixture()
		sessions.attendance[1] = map[uint]domain.AttendanceRecord{
			2: {SessionID: 1, EnrollmentID: 2, Status: domain.AttendanceAbsent, Notes: "sick"},
		}

		roster, err := svc.Roster(context.Background(), trainer, 1)
		require.NoError(t, err)
		require.Len(t, roster, 2)

		byEnrollment := map[uint]domain.RosterEntry{}
		for _, entry := range roster {
			byEnrollment[entry.EnrollmentID] = entry
		}

		ana := byEnrollment[1]
		assert.Equal(t, domain.AttendancePresent, ana.Status)
		assert.False(t, ana.Marked)

		rui := byEnrollment[2]
		assert.Equal(t, domain.AttendanceAbsent, rui.Status)
		assert.Equal(t, "sick", rui.Notes)
		assert.True(t, rui.Marked)
	})

	t.Run("non-staff is denied", func(t *testing.T) {
		svc, _ := attendanceFixture()

		_, err := svc.Roster(context.Background(), athlete, 1)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("missing session", func(t *testing.T) {
		svc, _ := attendanceFixture()

		_, err := svc.Roster(context.Background(), trainer, 99)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestAttendanceServiceSave(t *testing.T) {
	trainer := domain.Identity{UserID: 3, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}
	member := domain.Identity{UserID: 4, Authenticated: true, Roles: []domain.Role{domain.RoleUser}}

	t.Run("saves the sheet in one batch", func(t *testing.T) {
		svc, sessions := attendanceFixture()

		records, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 1, Status: domain.AttendancePresent},
			{EnrollmentID: 2, Status: domain.AttendanceExcused, Notes: "travel"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, sessions.saveCalls)
		require.Len(t, records, 2)

		for _, record := range records {
			assert.Equal(t, uint(3), record.MarkedBy)
			assert.False(t, record.MarkedAt.IsZero())
		}
	})

	t.Run("resubmission overwrites instead of duplicating", func(t *testing.T) {
		svc, _ := attendanceFixture()

		_, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 1, Status: domain.AttendanceAbsent},
		})
		require.NoError(t, err)

		records, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 1, Status: domain.AttendancePresent},
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.AttendancePresent, records[0].Status)
	})

	t.Run("empty mark status defaults to present", func(t *testing.T) {
		svc, _ := attendanceFixture()

		records, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 1},
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.AttendancePresent, records[0].Status)
	})

	t.Run("invalid status is rejected before writing", func(t *testing.T) {
		svc, sessions := attendanceFixture()

		_, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 1, Status: domain.AttendanceStatus("late")},
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Equal(t, 0, sessions.saveCalls)
	})

	t.Run("mark for a non-enrollee is rejected", func(t *testing.T) {
		svc, sessions := attendanceFixture()

		_, err := svc.Save(context.Background(), trainer, 1, []AttendanceMark{
			{EnrollmentID: 99, Status: domain.AttendancePresent},
		})
		assert.ErrorIs(t, err, ErrUnknownEnrollee)
		assert.Equal(t, 0, sessions.saveCalls)
	})

	t.Run("non-staff is denied", func(t *testing.T) {
		svc, _ := attendanceFixture()

		_, err := svc.Save(context.Background(), member, 1, nil)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
