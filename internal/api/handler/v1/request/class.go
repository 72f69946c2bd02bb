package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var timeOfDayExp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ClassRequest struct {
	Name        string `json:"name"`
	Discipline  string `json:"discipline"`
	Description string `json:"description"`
	TrainerID   *uint  `json:"trainer_id"`
	MaxCapacity *int   `json:"max_capacity"`
	Active      *bool  `json:"active"`
}

func (req *ClassRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Discipline, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.MaxCapacity, validation.Min(1)),
	)
}

type AddScheduleRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

func (req *AddScheduleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Weekday, validation.Min(0), validation.Max(6)),
		validation.Field(&req.StartTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.Location, validation.Length(0, 100)),
	)
}
