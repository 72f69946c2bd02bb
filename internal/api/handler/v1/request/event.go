package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEventTimeOrder = errors.New("ends_at must not be before starts_at")

type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Type        string    `json:"type"`
	Visibility  string    `json:"visibility"`
	TargetRoles []string  `json:"target_roles"`
}

func (req *EventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In("competition", "practice", "schedule", "meeting", "other")),
		validation.Field(&req.Visibility, validation.Required, validation.In("public", "trainers_only", "athletes_only", "members_only", "private")),
	)
	if err != nil {
		return err
	}

	if req.EndsAt.Before(req.StartsAt) {
		return errEventTimeOrder
	}

	return nil
}
