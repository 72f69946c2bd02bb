package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

type DashboardClassRepository interface {
	FindAll(ctx context.Context) ([]domain.Class, error)
	FindSchedulesByClassIDs(ctx context.Context, classIDs []uint) ([]domain.ClassSchedule, error)
}

// Dashboard is the payload behind the single role-resolved view.
type Dashboard struct {
	View   domain.DashboardView `json:"view"`
	Agenda []domain.AgendaEntry `json:"agenda,omitempty"`
	// Classes is filled for the trainer view: the classes they teach.
	Classes []domain.Class `json:"classes,omitempty"`
	// Stats is filled for the admin view.
	Stats *DashboardStats `json:"stats,omitempty"`
}

type DashboardStats struct {
	TotalClasses  int `json:"total_classes"`
	ActiveClasses int `json:"active_classes"`
}

type DashboardService struct {
	classRepo     DashboardClassRepository
	enrollmentSvc *EnrollmentService
	personRepo    EnrollmentPersonRepository
}

func NewDashboardService(classRepo DashboardClassRepository, enrollmentSvc *EnrollmentService, personRepo EnrollmentPersonRepository) *DashboardService {
	return &DashboardService{
		classRepo:     classRepo,
		enrollmentSvc: enrollmentSvc,
		personRepo:    personRepo,
	}
}

// Compose resolves the caller's view by fixed role priority and assembles
// the matching read-only payload. Roles are never mixed across sections.
func (s *DashboardService) Compose(ctx context.Context, identity domain.Identity) (Dashboard, error) {
	view := domain.ResolveDashboard(identity)
	dashboard := Dashboard{View: view}

	switch view {
	case domain.ViewAdmin:
		stats, err := s.adminStats(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		dashboard.Stats = stats

	case domain.ViewTrainer:
		classes, err := s.trainerClasses(ctx, identity)
		if err != nil {
			return Dashboard{}, err
		}
		dashboard.Classes = classes

	case domain.ViewGuardian, domain.ViewAthlete:
		agenda, err := s.Agenda(ctx, identity)
		if err != nil {
			return Dashboard{}, err
		}
		dashboard.Agenda = agenda
	}

	return dashboard, nil
}

// Agenda flattens the caller's active enrollments (own and guarded) into
// weekly schedule entries labelled with who attends.
func (s *DashboardService) Agenda(ctx context.Context, identity domain.Identity) ([]domain.AgendaEntry, error) {
	enrollments, err := s.enrollmentSvc.ListForCaller(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("s.enrollmentSvc.ListForCaller -> %w", err)
	}
	if len(enrollments) == 0 {
		return nil, nil
	}

	classIDs := make([]uint, 0, len(enrollments))
	seen := make(map[uint]struct{})
	for _, e := range enrollments {
		if _, ok := seen[e.ClassID]; ok {
			continue
		}
		seen[e.ClassID] = struct{}{}
		classIDs = append(classIDs, e.ClassID)
	}

	schedules, err := s.classRepo.FindSchedulesByClassIDs(ctx, classIDs)
	if err != nil {
		return nil, fmt.Errorf("s.classRepo.FindSchedulesByClassIDs -> %w", err)
	}

	byClass := make(map[uint][]domain.ClassSchedule)
	for _, schedule := range schedules {
		byClass[schedule.ClassID] = append(byClass[schedule.ClassID], schedule)
	}

	var agenda []domain.AgendaEntry
	for _, e := range enrollments {
		for _, schedule := range byClass[e.ClassID] {
			agenda = append(agenda, domain.AgendaEntry{
				ClassID:          e.ClassID,
				ClassName:        e.ClassName,
				Weekday:          schedule.Weekday,
				StartTime:        schedule.StartTime,
				EndTime:          schedule.EndTime,
				Location:         schedule.Location,
				EnrollmentID:     e.ID,
				ParticipantLabel: e.TargetName,
			})
		}
	}

	return agenda, nil
}

func (s *DashboardService) adminStats(ctx context.Context) (*DashboardStats, error) {
	all, err := s.classRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.classRepo.FindAll -> %w", err)
	}

	stats := &DashboardStats{TotalClasses: len(all)}
	for _, class := range all {
		if class.Active {
			stats.ActiveClasses++
		}
	}

	return stats, nil
}

func (s *DashboardService) trainerClasses(ctx context.Context, identity domain.Identity) ([]domain.Class, error) {
	profile, err := s.personRepo.FindProfileByUserID(ctx, identity.UserID)
	if err != nil {
		// A trainer without a profile row simply teaches nothing yet.
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.personRepo.FindProfileByUserID -> %w", err)
	}

	all, err := s.classRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.classRepo.FindAll -> %w", err)
	}

	var mine []domain.Class
	for _, class := range all {
		if class.TrainerID != nil && *class.TrainerID == profile.ID && class.Active {
			mine = append(mine, class)
		}
	}

	return mine, nil
}
