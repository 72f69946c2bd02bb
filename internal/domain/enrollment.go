package domain

import (
	"errors"
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentInactive  EnrollmentStatus = "inactive"
	EnrollmentSuspended EnrollmentStatus = "suspended"
)

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentActive, EnrollmentInactive, EnrollmentSuspended:
		return true
	}
	return false
}

type TargetKind string

const (
	TargetProfile TargetKind = "profile"
	TargetAthlete TargetKind = "athlete"
)

var ErrInvalidEnrollmentTarget = errors.New("enrollment target must reference exactly one of profile or athlete")

// EnrollmentTarget is the person bound to a class: exactly one of a profile
// or an athlete. The sum type makes the XOR invariant structural; the two
// nullable columns only exist at the storage boundary.
type EnrollmentTarget struct {
	kind TargetKind
	id   uint
}

func ProfileTarget(profileID uint) EnrollmentTarget {
	return EnrollmentTarget{kind: TargetProfile, id: profileID}
}

func AthleteTarget(athleteID uint) EnrollmentTarget {
	return EnrollmentTarget{kind: TargetAthlete, id: athleteID}
}

// NewEnrollmentTarget builds a target from the two nullable storage columns,
// rejecting rows that violate the XOR invariant.
func NewEnrollmentTarget(profileID, athleteID *uint) (EnrollmentTarget, error) {
	switch {
	case profileID != nil && athleteID == nil:
		return ProfileTarget(*profileID), nil
	case athleteID != nil && profileID == nil:
		return AthleteTarget(*athleteID), nil
	default:
		return EnrollmentTarget{}, ErrInvalidEnrollmentTarget
	}
}

func (t EnrollmentTarget) Kind() TargetKind { return t.kind }
func (t EnrollmentTarget) ID() uint         { return t.id }

func (t EnrollmentTarget) IsProfile() bool { return t.kind == TargetProfile }
func (t EnrollmentTarget) IsAthlete() bool { return t.kind == TargetAthlete }

// Columns splits the target back into the nullable column pair.
func (t EnrollmentTarget) Columns() (profileID, athleteID *uint) {
	id := t.id
	if t.kind == TargetProfile {
		return &id, nil
	}
	return nil, &id
}

type Enrollment struct {
	ID         uint             `json:"id"`
	ClassID    uint             `json:"class_id"`
	ClassName  string           `json:"class_name,omitempty"`
	Target     EnrollmentTarget `json:"-"`
	TargetKind TargetKind       `json:"target_kind"`
	TargetID   uint             `json:"target_id"`
	TargetName string           `json:"target_name,omitempty"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
}
