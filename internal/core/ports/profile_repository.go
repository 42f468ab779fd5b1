package ports

import (
	"context"

	"github.com/societyhub/community-api/internal/core/domain"
)

// ProfileUpdate carries the owner-editable profile fields. Nil means leave
// unchanged. Role is intentionally absent — it is immutable via this path.
type ProfileUpdate struct {
	FullName   *string
	FlatNumber *string
	Phone      *string
}

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// FindByIDs resolves a set of profile ids in one query, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error)
	// ListByRole returns all profiles with the given role, ordered by
	// flat_number ascending.
	ListByRole(ctx context.Context, role string) ([]*domain.Profile, error)
	Update(ctx context.Context, id string, upd ProfileUpdate) (*domain.Profile, error)
}

// ProfileRef is the display projection of a referenced profile, attached to
// list items in place of a relational join.
type ProfileRef struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	FlatNumber string `json:"flat_number"`
}
