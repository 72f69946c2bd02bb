package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type SessionRequest struct {
	ClassID    uint      `json:"class_id"`
	ScheduleID *uint     `json:"schedule_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
}

func (req *SessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClassID, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.StartTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(timeOfDayExp)),
		validation.Field(&req.Status, validation.In("scheduled", "completed", "cancelled")),
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}

type AttendanceMarkRequest struct {
	EnrollmentID uint   `json:"enrollment_id"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

type SaveAttendanceRequest struct {
	Marks []AttendanceMarkRequest `json:"marks"`
}

func (req *SaveAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Marks, validation.Required, validation.Each(validation.By(func(value interface{}) error {
			mark, _ := value.(AttendanceMarkRequest)

			return validation.ValidateStruct(
				&mark,
				validation.Field(&mark.EnrollmentID, validation.Required),
				validation.Field(&mark.Status, validation.In("present", "absent", "excused")),
				validation.Field(&mark.Notes, validation.Length(0, 500)),
			)
		}))),
	)
}
