package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a grievance.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusRejected   Status = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Closed and rejected are terminal; a resolved grievance may be reopened
// into in_progress or closed for good.
var validTransitions = map[Status][]Status{
	StatusSubmitted:  {StatusAssigned, StatusInProgress, StatusRejected},
	StatusAssigned:   {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {StatusClosed, StatusInProgress},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrGrievanceNotFound = errors.New("grievance not found")
var ErrForbidden = errors.New("access forbidden")
var ErrNoDepartments = errors.New("at least one department is required")
var ErrUnknownDepartment = errors.New("unknown department")
var ErrTooManyImages = errors.New("too many images attached")
var ErrNoChanges = errors.New("nothing to update")
var ErrEmptyComment = errors.New("comment text cannot be empty")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status accepts no further transitions.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Label returns the human-readable form shown in comments and notifications.
func (s Status) Label() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusAssigned:
		return "Assigned"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the six known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed, StatusRejected:
		return true
	}
	return false
}

// Priority represents the urgency band assigned to a grievance.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the four known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Label returns the human-readable form shown in comments and notifications.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}

// MaxImages is the per-grievance limit on attached photos.
const MaxImages = 5

// Grievance is the core aggregate root.
type Grievance struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description" bson:"description"`
	Departments     []string   `json:"departments" bson:"departments"`
	Status          Status     `json:"status" bson:"status"`
	Priority        Priority   `json:"priority" bson:"priority"`
	Location        string     `json:"location" bson:"location"`
	ImageURLs       []string   `json:"image_urls" bson:"image_urls"`
	SubmittedBy     string     `json:"submitted_by" bson:"submitted_by"`
	SubmittedByName string     `json:"submitted_by_name" bson:"submitted_by_name"`
	ContactPhone    string     `json:"contact_phone" bson:"contact_phone"`
	ContactEmail    string     `json:"contact_email" bson:"contact_email"`
	AssignedTo      []string   `json:"assigned_to" bson:"assigned_to"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
