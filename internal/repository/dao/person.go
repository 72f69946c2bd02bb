package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrAthleteNotFound  = errors.New("athlete not found")
	ErrGuardianNotFound = errors.New("guardian link not found")
)

type Profile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex"`
	User   User `gorm:"foreignKey:UserID"`

	Name                string `gorm:"not null"`
	Phone               string
	BirthDate           *time.Time
	Notes               string
	Discipline          string
	SubscriptionStatus  string
	SubscriptionEndDate *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Athlete struct {
	ID        uint  `gorm:"primaryKey"`
	ProfileID *uint `gorm:"index"` // set when the athlete has their own login

	Name      string `gorm:"not null"`
	Phone     string
	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AthleteGuardian struct {
	ID         uint    `gorm:"primaryKey"`
	GuardianID uint    `gorm:"not null;index;uniqueIndex:idx_athlete_guardians_pair"`
	Guardian   Profile `gorm:"foreignKey:GuardianID"`
	AthleteID  uint    `gorm:"not null;index;uniqueIndex:idx_athlete_guardians_pair"`
	Athlete    Athlete `gorm:"foreignKey:AthleteID"`

	Relationship string `gorm:"not null;default:parent"`

	CreatedAt time.Time `gorm:"not null"`
}

type PersonDAO struct {
	db *gorm.DB
}

func NewPersonDAO(db *gorm.DB) *PersonDAO {
	return &PersonDAO{
		db: db,
	}
}

func (d *PersonDAO) InsertProfile(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *PersonDAO) FindProfileByID(ctx context.Context, id uint) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *PersonDAO) FindProfileByUserID(ctx context.Context, userID uint) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *PersonDAO) UpdateProfile(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).Save(&profile)
	if result.Error != nil {
		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *PersonDAO) ListProfiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile

	result := d.db.WithContext(ctx).Order("name").Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

func (d *PersonDAO) InsertAthlete(ctx context.Context, athlete Athlete) (Athlete, error) {
	result := d.db.WithContext(ctx).Create(&athlete)
	if result.Error != nil {
		return Athlete{}, result.Error
	}

	return athlete, nil
}

func (d *PersonDAO) FindAthleteByID(ctx context.Context, id uint) (Athlete, error) {
	var athlete Athlete

	result := d.db.WithContext(ctx).First(&athlete, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Athlete{}, ErrAthleteNotFound
		}

		return Athlete{}, result.Error
	}

	return athlete, nil
}

func (d *PersonDAO) UpdateAthlete(ctx context.Context, athlete Athlete) (Athlete, error) {
	result := d.db.WithContext(ctx).Save(&athlete)
	if result.Error != nil {
		return Athlete{}, result.Error
	}

	return athlete, nil
}

func (d *PersonDAO) DeleteAthlete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Athlete{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAthleteNotFound
	}

	return nil
}

func (d *PersonDAO) ListAthletes(ctx context.Context) ([]Athlete, error) {
	var athletes []Athlete

	result := d.db.WithContext(ctx).Order("name").Find(&athletes)
	if result.Error != nil {
		return nil, result.Error
	}

	return athletes, nil
}

func (d *PersonDAO) InsertGuardian(ctx context.Context, link AthleteGuardian) (AthleteGuardian, error) {
	result := d.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		return AthleteGuardian{}, result.Error
	}

	return link, nil
}

func (d *PersonDAO) DeleteGuardian(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&AthleteGuardian{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuardianNotFound
	}

	return nil
}

// FindAthletesByGuardian returns the athletes a guardian profile is linked to.
func (d *PersonDAO) FindAthletesByGuardian(ctx context.Context, guardianProfileID uint) ([]Athlete, error) {
	var athletes []Athlete

	result := d.db.WithContext(ctx).
		Joins("JOIN athlete_guardians ON athlete_guardians.athlete_id = athletes.id").
		Where("athlete_guardians.guardian_id = ?", guardianProfileID).
		Find(&athletes)
	if result.Error != nil {
		return nil, result.Error
	}

	return athletes, nil
}

func (d *PersonDAO) FindGuardiansByAthlete(ctx context.Context, athleteID uint) ([]AthleteGuardian, error) {
	var links []AthleteGuardian

	result := d.db.WithContext(ctx).
		Preload("Guardian").
		Where("athlete_id = ?", athleteID).
		Find(&links)
	if result.Error != nil {
		return nil, result.Error
	}

	return links, nil
}
