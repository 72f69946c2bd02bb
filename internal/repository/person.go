package repository

import (
	"context"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrProfileNotFound  = dao.ErrProfileNotFound
	ErrAthleteNotFound  = dao.ErrAthleteNotFound
	ErrGuardianNotFound = dao.ErrGuardianNotFound
)

type PersonDAO interface {
	InsertProfile(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	FindProfileByID(ctx context.Context, id uint) (dao.Profile, error)
	FindProfileByUserID(ctx context.Context, userID uint) (dao.Profile, error)
	UpdateProfile(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	ListProfiles(ctx context.Context) ([]dao.Profile, error)
	InsertAthlete(ctx context.Context, athlete dao.Athlete) (dao.Athlete, error)
	FindAthleteByID(ctx context.Context, id uint) (dao.Athlete, error)
	UpdateAthlete(ctx context.Context, athlete dao.Athlete) (dao.Athlete, error)
	DeleteAthlete(ctx context.Context, id uint) error
	ListAthletes(ctx context.Context) ([]dao.Athlete, error)
	InsertGuardian(ctx context.Context, link dao.AthleteGuardian) (dao.AthleteGuardian, error)
	DeleteGuardian(ctx context.Context, id uint) error
	FindAthletesByGuardian(ctx context.Context, guardianProfileID uint) ([]dao.Athlete, error)
	FindGuardiansByAthlete(ctx context.Context, athleteID uint) ([]dao.AthleteGuardian, error)
}

type PersonRepository struct {
	dao PersonDAO
}

func NewPersonRepository(dao PersonDAO) *PersonRepository {
	return &PersonRepository{
		dao: dao,
	}
}

func (r *PersonRepository) CreateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	created, err := r.dao.InsertProfile(ctx, r.profileDomainToDao(profile))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.InsertProfile -> %w", err)
	}

	return r.profileDaoToDomain(created), nil
}

func (r *PersonRepository) FindProfileByID(ctx context.Context, id uint) (domain.Profile, error) {
	found, err := r.dao.FindProfileByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindProfileByID -> %w", err)
	}

	return r.profileDaoToDomain(found), nil
}

func (r *PersonRepository) FindProfileByUserID(ctx context.Context, userID uint) (domain.Profile, error) {
	found, err := r.dao.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindProfileByUserID -> %w", err)
	}

	return r.profileDaoToDomain(found), nil
}

func (r *PersonRepository) UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	updated, err := r.dao.UpdateProfile(ctx, r.profileDomainToDao(profile))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.profileDaoToDomain(updated), nil
}

func (r *PersonRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	found, err := r.dao.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProfiles -> %w", err)
	}

	profiles := make([]domain.Profile, len(found))
	for i, p := range found {
		profiles[i] = r.profileDaoToDomain(p)
	}

	return profiles, nil
}

func (r *PersonRepository) CreateAthlete(ctx context.Context, athlete domain.Athlete) (domain.Athlete, error) {
	created, err := r.dao.InsertAthlete(ctx, r.athleteDomainToDao(athlete))
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("r.dao.InsertAthlete -> %w", err)
	}

	return r.athleteDaoToDomain(created), nil
}

func (r *PersonRepository) FindAthleteByID(ctx context.Context, id uint) (domain.Athlete, error) {
	found, err := r.dao.FindAthleteByID(ctx, id)
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("r.dao.FindAthleteByID -> %w", err)
	}

	return r.athleteDaoToDomain(found), nil
}

func (r *PersonRepository) UpdateAthlete(ctx context.Context, athlete domain.Athlete) (domain.Athlete, error) {
	updated, err := r.dao.UpdateAthlete(ctx, r.athleteDomainToDao(athlete))
	if err != nil {
		return domain.Athlete{}, fmt.Errorf("r.dao.UpdateAthlete -> %w", err)
	}

	return r.athleteDaoToDomain(updated), nil
}

func (r *PersonRepository) DeleteAthlete(ctx context.Context, id uint) error {
	if err := r.dao.DeleteAthlete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteAthlete -> %w", err)
	}

	return nil
}

func (r *PersonRepository) ListAthletes(ctx context.Context) ([]domain.Athlete, error) {
	found, err := r.dao.ListAthletes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAthletes -> %w", err)
	}

	athletes := make([]domain.Athlete, len(found))
	for i, a := range found {
		athletes[i] = r.athleteDaoToDomain(a)
	}

	return athletes, nil
}

func (r *PersonRepository) CreateGuardian(ctx context.Context, link domain.AthleteGuardian) (domain.AthleteGuardian, error) {
	created, err := r.dao.InsertGuardian(ctx, dao.AthleteGuardian{
		GuardianID:   link.GuardianID,
		AthleteID:    link.AthleteID,
		Relationship: string(link.Relationship),
	})
	if err != nil {
		return domain.AthleteGuardian{}, fmt.Errorf("r.dao.InsertGuardian -> %w", err)
	}

	return r.guardianDaoToDomain(created), nil
}

func (r *PersonRepository) DeleteGuardian(ctx context.Context, id uint) error {
	if err := r.dao.DeleteGuardian(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteGuardian -> %w", err)
	}

	return nil
}

func (r *PersonRepository) FindAthletesByGuardian(ctx context.Context, guardianProfileID uint) ([]domain.Athlete, error) {
	found, err := r.dao.FindAthletesByGuardian(ctx, guardianProfileID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAthletesByGuardian -> %w", err)
	}

	athletes := make([]domain.Athlete, len(found))
	for i, a := range found {
		athletes[i] = r.athleteDaoToDomain(a)
	}

	return athletes, nil
}

func (r *PersonRepository) FindGuardiansByAthlete(ctx context.Context, athleteID uint) ([]domain.AthleteGuardian, error) {
	found, err := r.dao.FindGuardiansByAthlete(ctx, athleteID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGuardiansByAthlete -> %w", err)
	}

	links := make([]domain.AthleteGuardian, len(found))
	for i, l := range found {
		links[i] = r.guardianDaoToDomain(l)
	}

	return links, nil
}

func (r *PersonRepository) profileDaoToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		ID:                  p.ID,
		UserID:              p.UserID,
		Name:                p.Name,
		Phone:               p.Phone,
		BirthDate:           p.BirthDate,
		Notes:               p.Notes,
		Discipline:          p.Discipline,
		SubscriptionStatus:  p.SubscriptionStatus,
		SubscriptionEndDate: p.SubscriptionEndDate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (r *PersonRepository) profileDomainToDao(p domain.Profile) dao.Profile {
	return dao.Profile{
		ID:                  p.ID,
		UserID:              p.UserID,
		Name:                p.Name,
		Phone:               p.Phone,
		BirthDate:           p.BirthDate,
		Notes:               p.Notes,
		Discipline:          p.Discipline,
		SubscriptionStatus:  p.SubscriptionStatus,
		SubscriptionEndDate: p.SubscriptionEndDate,
	}
}

func (r *PersonRepository) athleteDaoToDomain(a dao.Athlete) domain.Athlete {
	return domain.Athlete{
		ID:        a.ID,
		ProfileID: a.ProfileID,
		Name:      a.Name,
		Phone:     a.Phone,
		BirthDate: a.BirthDate,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *PersonRepository) athleteDomainToDao(a domain.Athlete) dao.Athlete {
	return dao.Athlete{
		ID:        a.ID,
		ProfileID: a.ProfileID,
		Name:      a.Name,
		Phone:     a.Phone,
		BirthDate: a.BirthDate,
		Notes:     a.Notes,
	}
}

func (r *PersonRepository) guardianDaoToDomain(l dao.AthleteGuardian) domain.AthleteGuardian {
	return domain.AthleteGuardian{
		ID:           l.ID,
		GuardianID:   l.GuardianID,
		AthleteID:    l.AthleteID,
		Relationship: domain.GuardianRelationship(l.Relationship),
		CreatedAt:    l.CreatedAt,
	}
}
