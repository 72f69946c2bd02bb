package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is a registered account's member record.
type Profile struct {
	ID                  uint       `json:"id"`
	UserID              uint       `json:"user_id"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	Discipline          string     `json:"discipline,omitempty"`
	SubscriptionStatus  string     `json:"subscription_status,omitempty"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Athlete is a managed participant record. It may exist without any login;
// ProfileID links it to an account when the athlete can sign in themselves.
type Athlete struct {
	ID        uint       `json:"id"`
	ProfileID *uint      `json:"profile_id,omitempty"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type GuardianRelationship string

const (
	GuardianParent GuardianRelationship = "parent"
	GuardianLegal  GuardianRelationship = "guardian"
	GuardianOther  GuardianRelationship = "other"
)

// AthleteGuardian links a guardian profile to an athlete.
type AthleteGuardian struct {
	ID           uint                 `json:"id"`
	GuardianID   uint                 `json:"guardian_id"` // profile ID
	AthleteID    uint                 `json:"athlete_id"`
	Relationship GuardianRelationship `json:"relationship"`
	CreatedAt    time.Time            `json:"created_at"`
}
