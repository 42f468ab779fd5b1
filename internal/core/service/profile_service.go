package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// ProfileService implements profile self-service and the resident directory.
type ProfileService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, actor domain.Actor) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, actor.ID)
}

// Update mutates the owner-editable fields of the actor's own profile. Role
// changes are not reachable through this path.
func (s *ProfileService) Update(ctx context.Context, actor domain.Actor, upd ports.ProfileUpdate) (*domain.Profile, error) {
	if upd.FullName != nil && *upd.FullName == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", domain.ErrValidation)
	}
	if upd.FlatNumber != nil && *upd.FlatNumber == "" {
		return nil, fmt.Errorf("%w: flat number cannot be empty", domain.ErrValidation)
	}

	updated, err := s.profiles.Update(ctx, actor.ID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile_id", actor.ID).Msg("profile updated")
	return updated, nil
}

// ListResidents returns the resident directory, ordered by flat number. Used
// by the visitor and payment creation forms.
func (s *ProfileService) ListResidents(ctx context.Context, actor domain.Actor) ([]*domain.Profile, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSecurity {
		return nil, domain.ErrForbidden
	}
	return s.profiles.ListByRole(ctx, domain.RoleResident)
}
