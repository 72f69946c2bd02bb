package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/move-academia/academy-api/internal/domain"
)

type fakeClassRepo struct {
	classes   []domain.Class
	schedules []domain.ClassSchedule
}

func (f *fakeClassRepo) FindAll(_ context.Context) ([]domain.Class, error) {
	return f.classes, nil
}

func (f *fakeClassRepo) FindSchedulesByClassIDs(_ context.Context, classIDs []uint) ([]domain.ClassSchedule, error) {
	wanted := map[uint]struct{}{}
	for _, id := range classIDs {
		wanted[id] = struct{}{}
	}

	var result []domain.ClassSchedule
	for _, schedule := range f.schedules {
		if _, ok := wanted[schedule.ClassID]; ok {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func trainerID(id uint) *uint { return &id }

func TestDashboardServiceCompose(t *testing.T) {
	t.Run("anonymous caller gets the visitor view", func(t *testing.T) {
		svc := NewDashboardService(&fakeClassRepo{}, NewEnrollmentService(&fakeEnrollmentRepo{}, &fakePersonRepo{}), &fakePersonRepo{})

		dashboard, err := svc.Compose(context.Background(), domain.Anonymous)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewVisitor, dashboard.View)
		assert.Empty(t, dashboard.Agenda)
		assert.Empty(t, dashboard.Classes)
	})

	t.Run("admin view carries class counts", func(t *testing.T) {
		admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}

		classes := &fakeClassRepo{classes: []domain.Class{
			{ID: 1, Name: "MOVE'KIDS", Active: true},
			{ID: 2, Name: "Boxe", Active: false},
		}}

		svc := NewDashboardService(classes, NewEnrollmentService(&fakeEnrollmentRepo{}, &fakePersonRepo{}), &fakePersonRepo{})

		dashboard, err := svc.Compose(context.Background(), admin)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewAdmin, dashboard.View)
		require.NotNil(t, dashboard.Stats)
		assert.Equal(t, 2, dashboard.Stats.TotalClasses)
		assert.Equal(t, 1, dashboard.Stats.ActiveClasses)
	})

	t.Run("trainer sees only their active classes", func(t *testing.T) {
		trainer := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}

		classes := &fakeClassRepo{classes: []domain.Class{
			{ID: 1, Name: "MOVE'KIDS", TrainerID: trainerID(9), Active: true},
			{ID: 2, Name: "Boxe", TrainerID: trainerID(9), Active: false},
			{ID: 3, Name: "Capoeira", TrainerID: trainerID(4), Active: true},
			{ID: 4, Name: "Yoga", Active: true},
		}}
		persons := &fakePersonRepo{
			profiles: map[uint]domain.Profile{2: {ID: 9, UserID: 2, Name: "Carla"}},
		}

		svc := NewDashboardService(classes, NewEnrollmentService(&fakeEnrollmentRepo{}, persons), persons)

		dashboard, err := svc.Compose(context.Background(), trainer)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewTrainer, dashboard.View)
		require.Len(t, dashboard.Classes, 1)
		assert.Equal(t, "MOVE'KIDS", dashboard.Classes[0].Name)
	})

	t.Run("trainer without a profile sees an empty class list", func(t *testing.T) {
		trainer := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleTrainer}}

		classes := &fakeClassRepo{classes: []domain.Class{
			{ID: 1, Name: "MOVE'KIDS", TrainerID: trainerID(9), Active: true},
		}}

		svc := NewDashboardService(classes, NewEnrollmentService(&fakeEnrollmentRepo{}, &fakePersonRepo{}), &fakePersonRepo{})

		dashboard, err := svc.Compose(context.Background(), trainer)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewTrainer, dashboard.View)
		assert.Empty(t, dashboard.Classes)
	})

	t.Run("guardian agenda labels entries with the athlete's name", func(t *testing.T) {
		guardian := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleGuardian}}

		classes := &fakeClassRepo{
			schedules: []domain.ClassSchedule{
				{ID: 1, ClassID: 10, Weekday: 2, StartTime: "18:00", EndTime: "19:00", Location: "Main hall"},
			},
		}
		enrollments := &fakeEnrollmentRepo{
			byAthlete: map[uint][]domain.Enrollment{
				7: {{ID: 20, ClassID: 10, ClassName: "MOVE'KIDS", TargetName: "Ana"}},
			},
		}
		persons := &fakePersonRepo{
			profiles: map[uint]domain.Profile{1: {ID: 5, UserID: 1, Name: "Maria"}},
			guarded:  map[uint][]domain.Athlete{5: {{ID: 7, Name: "Ana"}}},
		}

		svc := NewDashboardService(classes, NewEnrollmentService(enrollments, persons), persons)

		dashboard, err := svc.Compose(context.Background(), guardian)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewGuardian, dashboard.View)
		require.Len(t, dashboard.Agenda, 1)

		entry := dashboard.Agenda[0]
		assert.Equal(t, "MOVE'KIDS", entry.ClassName)
		assert.Equal(t, 2, entry.Weekday)
		assert.Equal(t, "18:00", entry.StartTime)
		assert.Equal(t, "19:00", entry.EndTime)
		assert.Equal(t, "Ana", entry.ParticipantLabel)
	})

	t.Run("athlete without enrollments gets an empty agenda", func(t *testing.T) {
		athlete := domain.Identity{UserID: 3, Authenticated: true, Roles: []domain.Role{domain.RoleAthlete}}

		persons := &fakePersonRepo{
			profiles: map[uint]domain.Profile{3: {ID: 6, UserID: 3, Name: "Rui"}},
		}

		svc := NewDashboardService(&fakeClassRepo{}, NewEnrollmentService(&fakeEnrollmentRepo{}, persons), persons)

		dashboard, err := svc.Compose(context.Background(), athlete)
		require.NoError(t, err)
		assert.Equal(t, domain.ViewAthlete, dashboard.View)
		assert.Empty(t, dashboard.Agenda)
	})
}
