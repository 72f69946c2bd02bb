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

type fakePersonStore struct {
	profiles  map[uint]domain.Profile
	athletes  map[uint]domain.Athlete
	guardians map[uint]domain.AthleteGuardian
	nextID    uint
}

func newFakePersonStore() *fakePersonStore {
	return &fakePersonStore{
		profiles:  map[uint]domain.Profile{},
		athletes:  map[uint]domain.Athlete{},
		guardians: map[uint]domain.AthleteGuardian{},
	}
}

func (f *fakePersonStore) CreateProfile(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	f.nextID++
	profile.ID = f.nextID
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakePersonStore) FindProfileByID(_ context.Context, id uint) (domain.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return domain.Profile{}, repository.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakePersonStore) FindProfileByUserID(_ context.Context, userID uint) (domain.Profile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return domain.Profile{}, repository.ErrProfileNotFound
}

func (f *fakePersonStore) UpdateProfile(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakePersonStore) ListProfiles(_ context.Context) ([]domain.Profile, error) {
	var result []domain.Profile
	for _, profile := range f.profiles {
		result = append(result, profile)
	}
	return result, nil
}

func (f *fakePersonStore) CreateAthlete(_ context.Context, athlete domain.Athlete) (domain.Athlete, error) {
	f.nextID++
	athlete.ID = f.nextID
	f.athletes[athlete.ID] = athlete
	return athlete, nil
}

func (f *fakePersonStore) FindAthleteByID(_ context.Context, id uint) (domain.Athlete, error) {
	athlete, ok := f.athletes[id]
	if !ok {
		return domain.Athlete{}, repository.ErrAthleteNotFound
	}
	return athlete, nil
}

func (f *fakePersonStore) UpdateAthlete(_ context.Context, athlete domain.Athlete) (domain.Athlete, error) {
	f.athletes[athlete.ID] = athlete
	return athlete, nil
}

func (f *fakePersonStore) DeleteAthlete(_ context.Context, id uint) error {
	delete(f.athletes, id)
	return nil
}

func (f *fakePersonStore) ListAthletes(_ context.Context) ([]domain.Athlete, error) {
	var result []domain.Athlete
	for _, athlete := range f.athletes {
		result = append(result, athlete)
	}
	return result, nil
}

func (f *fakePersonStore) CreateGuardian(_ context.Context, link domain.AthleteGuardian) (domain.AthleteGuardian, error) {
	f.nextID++
	link.ID = f.nextID
	f.guardians[link.ID] = link
	return link, nil
}

func (f *fakePersonStore) DeleteGuardian(_ context.Context, id uint) error {
	if _, ok := f.guardians[id]; !ok {
		return repository.ErrGuardianNotFound
	}
	delete(f.guardians, id)
	return nil
}

func (f *fakePersonStore) FindAthletesByGuardian(_ context.Context, guardianProfileID uint) ([]domain.Athlete, error) {
	var result []domain.Athlete
	for _, link := range f.guardians {
		if link.GuardianID == guardianProfileID {
			result = append(result, f.athletes[link.AthleteID])
		}
	}
	return result, nil
}

func (f *fakePersonStore) FindGuardiansByAthlete(_ context.Context, athleteID uint) ([]domain.AthleteGuardian, error) {
	var result []domain.AthleteGuardian
	for _, link := range f.guardians {
		if link.AthleteID == athleteID {
			result = append(result, link)
		}
	}
	return result, nil
}

func TestPersonServiceUpdateProfile(t *testing.T) {
	createdAt := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	newStore := func() *fakePersonStore {
		store := newFakePersonStore()
		store.profiles[5] = domain.Profile{ID: 5, UserID: 2, Name: "Maria", CreatedAt: createdAt}
		store.nextID = 5
		return store
	}

	t.Run("owner edit keeps ownership and creation time", func(t *testing.T) {
		store := newStore()
		svc := NewPersonService(store)
		owner := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleUser}}

		// The request payload carries neither user id nor creation time.
		updated, err := svc.UpdateProfile(context.Background(), owner, domain.Profile{
			ID:    5,
			Name:  "Maria Silva",
			Phone: "912345678",
		})
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", updated.Name)
		assert.Equal(t, uint(2), updated.UserID)
		assert.Equal(t, createdAt, updated.CreatedAt)
		assert.Equal(t, createdAt, store.profiles[5].CreatedAt)
	})

	t.Run("non-owner without admin is denied", func(t *testing.T) {
		svc := NewPersonService(newStore())
		other := domain.Identity{UserID: 9, Authenticated: true, Roles: []domain.Role{domain.RoleUser}}

		_, err := svc.UpdateProfile(context.Background(), other, domain.Profile{ID: 5, Name: "Hijack"})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestPersonServiceUpdateAthlete(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	store := newFakePersonStore()
	store.athletes[7] = domain.Athlete{ID: 7, Name: "Ana", CreatedAt: createdAt}
	store.nextID = 7

	svc := NewPersonService(store)

	updated, err := svc.UpdateAthlete(context.Background(), admin, domain.Athlete{
		ID:    7,
		Name:  "Ana Costa",
		Notes: "moved up a group",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Costa", updated.Name)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, createdAt, store.athletes[7].CreatedAt)

	_, err = svc.UpdateAthlete(context.Background(), admin, domain.Athlete{ID: 99, Name: "Ghost"})
	assert.Error(t, err)
}

func TestPersonServiceAddOwnAthlete(t *testing.T) {
	guardian := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleGuardian}}

	store := newFakePersonStore()
	store.profiles[5] = domain.Profile{ID: 5, UserID: 2, Name: "Maria"}
	store.nextID = 5

	svc := NewPersonService(store)

	created, err := svc.AddOwnAthlete(context.Background(), guardian, domain.Athlete{Name: "Ana"}, domain.GuardianParent)
	require.NoError(t, err)

	athletes, err := svc.ListOwnAthletes(context.Background(), guardian)
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, created.ID, athletes[0].ID)
}
