package domain

import (
	"errors"
	"time"
)

const (
	RoleCitizen    = "citizen"
	RoleDepartment = "department"
	RoleAdmin      = "admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Departments is the closed set of village departments a grievance can target
// and a department-role user can belong to.
var Departments = []string{
	"Municipal Cleanliness",
	"Electrical Department",
	"Water Department",
	"Roads & Infrastructure",
	"Health & Sanitation",
}

// KnownDepartment reports whether name is one of the configured departments.
func KnownDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the three supported roles.
func ValidRole(role string) bool {
	return role == RoleCitizen || role == RoleDepartment || role == RoleAdmin
}

// User models an authenticated actor in the system. Role is fixed at signup;
// Department is set exactly when Role is "department".
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
