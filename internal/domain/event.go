package domain

import "time"

type EventType string

const (
	EventCompetition EventType = "competition"
	EventPractice    EventType = "practice"
	EventSchedule    EventType = "schedule"
	EventMeeting     EventType = "meeting"
	EventOther       EventType = "other"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventCompetition, EventPractice, EventSchedule, EventMeeting, EventOther:
		return true
	}
	return false
}

type EventVisibility string

const (
	VisibilityPublic       EventVisibility = "public"
	VisibilityTrainersOnly EventVisibility = "trainers_only"
	VisibilityAthletesOnly EventVisibility = "athletes_only"
	VisibilityMembersOnly  EventVisibility = "members_only"
	VisibilityPrivate      EventVisibility = "private"
)

func (v EventVisibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityTrainersOnly, VisibilityAthletesOnly, VisibilityMembersOnly, VisibilityPrivate:
		return true
	}
	return false
}

type Event struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	StartsAt    time.Time       `json:"starts_at"`
	EndsAt      time.Time       `json:"ends_at"`
	Type        EventType       `json:"type"`
	Visibility  EventVisibility `json:"visibility"`
	// TargetRoles only applies when Visibility is private. It is cleared on
	// persist for every other visibility.
	TargetRoles []Role    `json:"target_roles,omitempty"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VisibleTo reports whether the event may be shown to the given identity.
// Admins see everything. A private event with no target roles is visible
// to nobody else.
func (e Event) VisibleTo(identity Identity) bool {
	if identity.IsAdmin() {
		return true
	}

	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityTrainersOnly:
		return identity.IsTrainer()
	case VisibilityAthletesOnly:
		return identity.IsAthlete()
	case VisibilityMembersOnly:
		return identity.Authenticated && len(identity.Roles) > 0
	case VisibilityPrivate:
		for _, role := range e.TargetRoles {
			if identity.HasRole(role) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
