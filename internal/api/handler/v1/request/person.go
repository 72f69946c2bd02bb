package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateProfileRequest struct {
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	BirthDate           *time.Time `json:"birth_date"`
	Notes               string     `json:"notes"`
	Discipline          string     `json:"discipline"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Phone, validation.Length(0, 30)),
	)
}

type AthleteRequest struct {
	Name      string     `json:"name"`
	ProfileID *uint      `json:"profile_id"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
	Notes     string     `json:"notes"`
}

func (req *AthleteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Phone, validation.Length(0, 30)),
	)
}

type AddOwnAthleteRequest struct {
	AthleteRequest
	Relationship string `json:"relationship"`
}

func (req *AddOwnAthleteRequest) Validate() error {
	if err := req.AthleteRequest.Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Relationship, validation.Required, validation.In("parent", "guardian", "other")),
	)
}

type AddGuardianRequest struct {
	GuardianID   uint   `json:"guardian_id"`
	Relationship string `json:"relationship"`
}

func (req *AddGuardianRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GuardianID, validation.Required),
		validation.Field(&req.Relationship, validation.Required, validation.In("parent", "guardian", "other")),
	)
}
