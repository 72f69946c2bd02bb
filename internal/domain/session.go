package domain

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// ClassSession is one concrete calendar occurrence of a class, optionally
// derived from a recurring schedule.
type ClassSession struct {
	ID         uint          `json:"id"`
	ClassID    uint          `json:"class_id"`
	ClassName  string        `json:"class_name,omitempty"`
	ScheduleID *uint         `json:"schedule_id,omitempty"`
	Date       time.Time     `json:"date"`
	StartTime  string        `json:"start_time"` // HH:MM
	EndTime    string        `json:"end_time"`   // HH:MM
	Status     SessionStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecord is the stored status of one enrollment at one session.
// At most one record exists per (session, enrollment) pair.
type AttendanceRecord struct {
	ID           uint             `json:"id"`
	SessionID    uint             `json:"session_id"`
	EnrollmentID uint             `json:"enrollment_id"`
	Status       AttendanceStatus `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	MarkedBy     uint             `json:"marked_by"`
	MarkedAt     time.Time        `json:"marked_at"`
}

// RosterEntry is one participant line of a session's attendance sheet.
// Unmarked participants default to present; the trainer overrides from
// there rather than filling a blank sheet.
type RosterEntry struct {
	EnrollmentID    uint             `json:"enrollment_id"`
	ParticipantName string           `json:"participant_name"`
	Status          AttendanceStatus `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	Marked          bool             `json:"marked"`
}
