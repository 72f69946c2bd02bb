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

type fakeEventRepo struct {
	events map[uint]domain.Event
	nextID uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uint]domain.Event{}}
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, _, _ time.Time) ([]domain.Event, error) {
	var result []domain.Event
	for _, event := range f.events {
		result = append(result, event)
	}
	return result, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uint) error {
	delete(f.events, id)
	return nil
}

func TestEventServiceCreate(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	trainer := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}

	t.Run("non-admin is denied", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())

		_, err := svc.Create(context.Background(), trainer, domain.Event{
			Type:       domain.EventPractice,
			Visibility: domain.VisibilityPublic,
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("target roles are cleared for non-private visibility", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())

		event, err := svc.Create(context.Background(), admin, domain.Event{
			Title:       "Open day",
			Type:        domain.EventOther,
			Visibility:  domain.VisibilityPublic,
			TargetRoles: []domain.Role{domain.RoleTrainer},
		})
		require.NoError(t, err)
		assert.Nil(t, event.TargetRoles)
		assert.Equal(t, uint(1), event.CreatedBy)
	})

	t.Run("private keeps its target roles", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())

		event, err := svc.Create(context.Background(), admin, domain.Event{
			Title:       "Staff meeting",
			Type:        domain.EventMeeting,
			Visibility:  domain.VisibilityPrivate,
			TargetRoles: []domain.Role{domain.RoleTrainer},
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.Role{domain.RoleTrainer}, event.TargetRoles)
	})

	t.Run("invalid type and visibility are rejected", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo())

		_, err := svc.Create(context.Background(), admin, domain.Event{
			Type:       domain.EventType("party"),
			Visibility: domain.VisibilityPublic,
		})
		assert.ErrorIs(t, err, ErrInvalidEventType)

		_, err = svc.Create(context.Background(), admin, domain.Event{
			Type:       domain.EventPractice,
			Visibility: domain.EventVisibility("secret"),
		})
		assert.ErrorIs(t, err, ErrInvalidVisibility)
	})
}

func TestEventServiceUpdate(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}

	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	created, err := svc.Create(context.Background(), admin, domain.Event{
		Title:      "Tournament",
		Type:       domain.EventCompetition,
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	other := domain.Identity{UserID: 9, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	updated, err := svc.Update(context.Background(), other, domain.Event{
		ID:         created.ID,
		Title:      "Regional tournament",
		Type:       domain.EventCompetition,
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	// The original creator is preserved across updates.
	assert.Equal(t, uint(1), updated.CreatedBy)
	assert.Equal(t, "Regional tournament", updated.Title)

	_, err = svc.Update(context.Background(), admin, domain.Event{ID: 99, Type: domain.EventOther, Visibility: domain.VisibilityPublic})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventServiceListVisible(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	athlete := domain.Identity{UserID: 3, Authenticated: true, Roles: []domain.Role{domain.RoleAthlete}}

	repo := newFakeEventRepo()
	svc := NewEventService(repo)

	for _, event := range []domain.Event{
		{Title: "Open day", Type: domain.EventOther, Visibility: domain.VisibilityPublic},
		{Title: "Coach sync", Type: domain.EventMeeting, Visibility: domain.VisibilityTrainersOnly},
		{Title: "Grading", Type: domain.EventSchedule, Visibility: domain.VisibilityAthletesOnly},
		{Title: "Board meeting", Type: domain.EventMeeting, Visibility: domain.VisibilityPrivate},
	} {
		_, err := svc.Create(context.Background(), admin, event)
		require.NoError(t, err)
	}

	from := time.Now().AddDate(0, -1, 0)
	to := time.Now().AddDate(0, 1, 0)

	visible, err := svc.ListVisible(context.Background(), athlete, from, to)
	require.NoError(t, err)

	titles := make([]string, len(visible))
	for i, event := range visible {
		titles[i] = event.Title
	}
	assert.ElementsMatch(t, []string{"Open day", "Grading"}, titles)

	all, err := svc.ListVisible(context.Background(), admin, from, to)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	public, err := svc.ListVisible(context.Background(), domain.Anonymous, from, to)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}
