package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts and the recipient
// lookups the notification fan-out depends on.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindAdmins returns every user with the admin role.
	FindAdmins(ctx context.Context) ([]*domain.User, error)
	// FindOfficials returns every department-role user whose department is in
	// departments.
	FindOfficials(ctx context.Context, departments []string) ([]*domain.User, error)
}
