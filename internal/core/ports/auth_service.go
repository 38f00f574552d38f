package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// RegisterInput carries signup details. Department is required exactly when
// Role is "department".
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Department  string
	Phone       string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
