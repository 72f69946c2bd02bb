package domain

import "time"

type Class struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Discipline  string          `json:"discipline"`
	Description string          `json:"description,omitempty"`
	TrainerID   *uint           `json:"trainer_id,omitempty"` // profile ID
	TrainerName string          `json:"trainer_name,omitempty"`
	MaxCapacity *int            `json:"max_capacity,omitempty"` // nil = unlimited, advisory only
	Active      bool            `json:"active"`
	Schedules   []ClassSchedule `json:"schedules,omitempty"`
	// EnrolledCount is the number of active enrollments, for display only.
	// Capacity is never enforced on enrollment.
	EnrolledCount int       `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClassSchedule is a recurring weekly slot of a class.
// Weekday follows time.Weekday numbering: 0 = Sunday.
type ClassSchedule struct {
	ID        uint   `json:"id"`
	ClassID   uint   `json:"class_id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Location  string `json:"location,omitempty"`
}

// AgendaEntry is one row of a member's weekly agenda: a scheduled slot of a
// class the person (or one of their athletes) is actively enrolled in.
type AgendaEntry struct {
	ClassID      uint   `json:"class_id"`
	ClassName    string `json:"class_name"`
	Weekday      int    `json:"weekday"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Location     string `json:"location,omitempty"`
	EnrollmentID uint   `json:"enrollment_id"`
	// ParticipantLabel names who attends: the athlete's name for guardian
	// agendas, the caller's own name otherwise.
	ParticipantLabel string `json:"participant_label"`
}
