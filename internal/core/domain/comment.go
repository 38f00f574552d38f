package domain

import "time"

// Comment is an append-only discussion or audit entry on a grievance.
// System-generated status-change records carry IsStatusUpdate=true and a
// snapshot of the new status; human comments carry neither.
type Comment struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	GrievanceID    string    `json:"grievance_id" bson:"grievance_id"`
	UserID         string    `json:"user_id" bson:"user_id"`
	UserName       string    `json:"user_name" bson:"user_name"`
	UserRole       string    `json:"user_role" bson:"user_role"`
	Text           string    `json:"text" bson:"text"`
	IsStatusUpdate bool      `json:"is_status_update" bson:"is_status_update"`
	NewStatus      Status    `json:"new_status,omitempty" bson:"new_status,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
