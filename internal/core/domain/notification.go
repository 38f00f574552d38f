package domain

import (
	"errors"
	"time"
)

// NotificationType classifies how a notification is rendered to its recipient.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a directed message to exactly one recipient. Read is the
// only mutable field and only the recipient may flip it.
type Notification struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	UserID         string           `json:"user_id" bson:"user_id"`
	Title          string           `json:"title" bson:"title"`
	Message        string           `json:"message" bson:"message"`
	Type           NotificationType `json:"type" bson:"type"`
	Read           bool             `json:"read" bson:"read"`
	GrievanceID    string           `json:"grievance_id,omitempty" bson:"grievance_id,omitempty"`
	GrievanceTitle string           `json:"grievance_title,omitempty" bson:"grievance_title,omitempty"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
}
