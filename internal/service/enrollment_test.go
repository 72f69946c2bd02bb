package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

type fakeEnrollmentRepo struct {
	byID        map[uint]domain.Enrollment
	byProfile   map[uint][]domain.Enrollment
	byAthlete   map[uint][]domain.Enrollment
	byClass     map[uint][]domain.Enrollment
	created     []domain.Enrollment
	statusCalls []domain.EnrollmentStatus
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, classID uint, target domain.EnrollmentTarget, status domain.EnrollmentStatus) (domain.Enrollment, error) {
	e := domain.Enrollment{
		ID:         uint(len(f.created) + 100),
		ClassID:    classID,
		Target:     target,
		TargetKind: target.Kind(),
		TargetID:   target.ID(),
		Status:     status,
	}
	f.created = append(f.created, e)
	if f.byID == nil {
		f.byID = map[uint]domain.Enrollment{}
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEnrollmentRepo) FindByID(_ context.Context, id uint) (domain.Enrollment, error) {
	e, ok := f.byID[id]
	if !ok {
		return domain.Enrollment{}, repository.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentRepo) FindByClassID(_ context.Context, classID uint) ([]domain.Enrollment, error) {
	return f.byClass[classID], nil
}

func (f *fakeEnrollmentRepo) FindActiveByClassID(_ context.Context, classID uint) ([]domain.Enrollment, error) {
	return f.byClass[classID], nil
}

func (f *fakeEnrollmentRepo) FindActiveByProfileID(_ context.Context, profileID uint) ([]domain.Enrollment, error) {
	return f.byProfile[profileID], nil
}

func (f *fakeEnrollmentRepo) FindActiveByAthleteIDs(_ context.Context, athleteIDs []uint) ([]domain.Enrollment, error) {
	var result []domain.Enrollment
	for _, id := range athleteIDs {
		result = append(result, f.byAthlete[id]...)
	}
	return result, nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id uint, status domain.EnrollmentStatus) error {
	e, ok := f.byID[id]
	if !ok {
		return repository.ErrEnrollmentNotFound
	}
	f.statusCalls = append(f.statusCalls, status)
	e.Status = status
	f.byID[id] = e
	return nil
}

func (f *fakeEnrollmentRepo) Delete(_ context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

type fakePersonRepo struct {
	profiles map[uint]domain.Profile // keyed by user id
	guarded  map[uint][]domain.Athlete
}

func (f *fakePersonRepo) FindProfileByUserID(_ context.Context, userID uint) (domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakePersonRepo) FindAthletesByGuardian(_ context.Context, guardianProfileID uint) ([]domain.Athlete, error) {
	return f.guarded[guardianProfileID], nil
}

func TestEnrollmentServiceListForCaller(t *testing.T) {
	guardian := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleGuardian}}

	t.Run("unions own and guarded enrollments without duplicates", func(t *testing.T) {
		own := domain.Enrollment{ID: 1, ClassID: 10, TargetName: "Maria"}
		guarded := domain.Enrollment{ID: 2, ClassID: 10, TargetName: "Ana"}

		repo := &fakeEnrollmentRepo{
			byProfile: map[uint][]domain.Enrollment{5: {own}},
			byAthlete: map[uint][]domain.Enrollment{
				// Athlete 7's list duplicates the own enrollment to
				// exercise the dedup path.
				7: {guarded, own},
			},
		}
		persons := &fakePersonRepo{
			profiles: map[uint]domain.Profile{1: {ID: 5, UserID: 1, Name: "Maria"}},
			guarded:  map[uint][]domain.Athlete{5: {{ID: 7, Name: "Ana"}}},
		}

		svc := NewEnrollmentService(repo, persons)

		enrollments, err := svc.ListForCaller(context.Background(), guardian)
		require.NoError(t, err)
		require.Len(t, enrollments, 2)
		assert.Equal(t, uint(1), enrollments[0].ID)
		assert.Equal(t, uint(2), enrollments[1].ID)
	})

	t.Run("caller without profile gets an empty list", func(t *testing.T) {
		svc := NewEnrollmentService(&fakeEnrollmentRepo{}, &fakePersonRepo{})

		enrollments, err := svc.ListForCaller(context.Background(), guardian)
		require.NoError(t, err)
		assert.Empty(t, enrollments)
	})

	t.Run("guardians never see other guardians' athletes", func(t *testing.T) {
		otherGuarded := domain.Enrollment{ID: 3, ClassID: 11, TargetName: "Rui"}

		repo := &fakeEnrollmentRepo{
			byAthlete: map[uint][]domain.Enrollment{8: {otherGuarded}},
		}
		persons := &fakePersonRepo{
			profiles: map[uint]domain.Profile{1: {ID: 5, UserID: 1}},
			// Caller guards nobody; athlete 8 belongs to someone else.
			guarded: map[uint][]domain.Athlete{},
		}

		svc := NewEnrollmentService(repo, persons)

		enrollments, err := svc.ListForCaller(context.Background(), guardian)
		require.NoError(t, err)
		assert.Empty(t, enrollments)
	})
}

func TestEnrollmentServiceAdd(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	trainer := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}

	t.Run("admin enrolls an athlete", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := NewEnrollmentService(repo, &fakePersonRepo{})

		enrollment, err := svc.Add(context.Background(), admin, 10, domain.AthleteTarget(7))
		require.NoError(t, err)
		assert.Equal(t, domain.EnrollmentActive, enrollment.Status)
		assert.Equal(t, domain.TargetAthlete, enrollment.TargetKind)
		assert.Equal(t, uint(7), enrollment.TargetID)
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		svc := NewEnrollmentService(&fakeEnrollmentRepo{}, &fakePersonRepo{})

		_, err := svc.Add(context.Background(), trainer, 10, domain.ProfileTarget(5))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("duplicate enrollments are allowed", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := NewEnrollmentService(repo, &fakePersonRepo{})

		_, err := svc.Add(context.Background(), admin, 10, domain.ProfileTarget(5))
		require.NoError(t, err)
		_, err = svc.Add(context.Background(), admin, 10, domain.ProfileTarget(5))
		require.NoError(t, err)
		assert.Len(t, repo.created, 2)
	})
}

func TestEnrollmentServiceUpdateStatus(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}

	repo := &fakeEnrollmentRepo{
		byID: map[uint]domain.Enrollment{
			1: {ID: 1, ClassID: 10, Status: domain.EnrollmentActive},
		},
	}
	svc := NewEnrollmentService(repo, &fakePersonRepo{})

	updated, err := svc.UpdateStatus(context.Background(), admin, 1, domain.EnrollmentSuspended)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentSuspended, updated.Status)

	// Setting the same status again succeeds without error.
	updated, err = svc.UpdateStatus(context.Background(), admin, 1, domain.EnrollmentSuspended)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentSuspended, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), admin, 99, domain.EnrollmentActive)
	assert.Error(t, err)
}
