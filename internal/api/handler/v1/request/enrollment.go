package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEnrollmentTarget = errors.New("exactly one of profile_id or athlete_id must be set")

type AddEnrollmentRequest struct {
	ClassID   uint  `json:"class_id"`
	ProfileID *uint `json:"profile_id"`
	AthleteID *uint `json:"athlete_id"`
}

func (req *AddEnrollmentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ClassID, validation.Required),
	)
	if err != nil {
		return err
	}

	if (req.ProfileID == nil) == (req.AthleteID == nil) {
		return errEnrollmentTarget
	}

	return nil
}

type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateEnrollmentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("active", "inactive", "suspended")),
	)
}
