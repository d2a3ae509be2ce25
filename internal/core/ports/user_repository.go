package ports

import (
	"context"

	"github.com/dialkey/identity-service/internal/core/domain"
)

// UserRepository defines persistence operations for registered identities.
// Implementations must enforce email/phone uniqueness atomically with the
// insert; Create returns domain.ErrUserExists when either value collides.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmailOrPhone retrieves a user matching either contact value.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
