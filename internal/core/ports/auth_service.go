package ports

import (
	"context"

	"github.com/societyhub/community-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a profile.
type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	FlatNumber string
	Phone      string
	Role       string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	// Login verifies credentials and returns a signed session token plus the
	// authenticated profile.
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
}

// ProfileService defines profile self-service and directory operations.
type ProfileService interface {
	Get(ctx context.Context, actor domain.Actor) (*domain.Profile, error)
	Update(ctx context.Context, actor domain.Actor, upd ProfileUpdate) (*domain.Profile, error)
	// ListResidents returns the resident directory used by visitor and
	// payment creation forms. Restricted to admin and security.
	ListResidents(ctx context.Context, actor domain.Actor) ([]*domain.Profile, error)
}
