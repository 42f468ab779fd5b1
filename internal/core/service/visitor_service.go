package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/api/metrics"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// VisitorService implements gate logging and the visitor lifecycle.
type VisitorService struct {
	visitors ports.VisitorRepository
	profiles ports.ProfileRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewVisitorService(visitors ports.VisitorRepository, profiles ports.ProfileRepository, cache ports.StatsCache, logger zerolog.Logger) *VisitorService {
	return &VisitorService{visitors: visitors, profiles: profiles, cache: cache, logger: logger}
}

// Create logs a visitor at the gate. Security and admin only.
func (s *VisitorService) Create(ctx context.Context, actor domain.Actor, input ports.CreateVisitorInput) (*domain.Visitor, error) {
	if actor.Role != domain.RoleSecurity && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.VisitorName == "" || input.VisitorPhone == "" {
		return nil, fmt.Errorf("%w: visitor name and phone are required", domain.ErrValidation)
	}

	flatNumber := input.FlatNumber
	if input.ResidentID != "" {
		resident, err := s.profiles.FindByID(ctx, input.ResidentID)
		if err != nil {
			return nil, err
		}
		if flatNumber == "" {
			flatNumber = resident.FlatNumber
		}
	}
	if flatNumber == "" {
		return nil, fmt.Errorf("%w: flat number is required", domain.ErrValidation)
	}

	visitor := &domain.Visitor{
		VisitorName:  input.VisitorName,
		VisitorPhone: input.VisitorPhone,
		FlatNumber:   flatNumber,
		ResidentID:   input.ResidentID,
		Purpose:      input.Purpose,
		Status:       domain.VisitorPending,
		CheckInTime:  time.Now().UTC(),
		AddedBy:      actor.ID,
	}

	created, err := s.visitors.Create(ctx, visitor)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create visitor")
		return nil, err
	}

	metrics.VisitorsLoggedTotal.Inc()
	s.invalidateStats(ctx, created.ResidentID)
	s.logger.Info().Str("visitor_id", created.ID).Str("flat_number", flatNumber).Msg("visitor logged")
	return created, nil
}

// List returns visitor entries newest first. Residents see only visits to
// their own flat; admin and security see all entries.
func (s *VisitorService) List(ctx context.Context, actor domain.Actor, status domain.VisitorStatus) ([]ports.VisitorItem, error) {
	if status != "" && !domain.ValidVisitorStatus(status) {
		return nil, fmt.Errorf("%w: unknown visitor status %q", domain.ErrValidation, status)
	}

	filter := ports.VisitorFilter{Status: status}
	if actor.Role == domain.RoleResident {
		filter.ResidentID = actor.ID
	}

	visitors, err := s.visitors.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(visitors))
	seen := make(map[string]struct{}, len(visitors))
	for _, v := range visitors {
		if v.ResidentID == "" {
			continue
		}
		if _, ok := seen[v.ResidentID]; ok {
			continue
		}
		seen[v.ResidentID] = struct{}{}
		ids = append(ids, v.ResidentID)
	}
	refs, err := profileRefs(ctx, s.profiles, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ports.VisitorItem, 0, len(visitors))
	for _, v := range visitors {
		items = append(items, ports.VisitorItem{Visitor: *v, Resident: refs[v.ResidentID]})
	}
	return items, nil
}

// Approve lets the visited resident admit a pending visitor.
func (s *VisitorService) Approve(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error) {
	return s.transition(ctx, actor, visitorID, domain.VisitorApproved)
}

// Reject lets the visited resident turn a pending visitor away.
func (s *VisitorService) Reject(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error) {
	return s.transition(ctx, actor, visitorID, domain.VisitorRejected)
}

// CheckOut records an approved visitor leaving, stamping check_out_time
// atomically with the status change.
func (s *VisitorService) CheckOut(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error) {
	return s.transition(ctx, actor, visitorID, domain.VisitorCheckedOut)
}

func (s *VisitorService) transition(ctx context.Context, actor domain.Actor, visitorID string, next domain.VisitorStatus) (*domain.Visitor, error) {
	visitor, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	if err := visitor.AuthorizeTransition(actor, next); err != nil {
		metrics.TransitionDenialsTotal.WithLabelValues("visitor", denialReason(err)).Inc()
		return nil, fmt.Errorf("visitor %s: %s → %s: %w", visitorID, visitor.Status, next, err)
	}

	var checkOut *time.Time
	if next == domain.VisitorCheckedOut {
		now := time.Now().UTC()
		checkOut = &now
	}

	updated, err := s.visitors.UpdateStatus(ctx, visitorID, next, checkOut)
	if err != nil {
		s.logger.Error().Err(err).Str("visitor_id", visitorID).Msg("failed to update visitor status")
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues("visitor", string(visitor.Status), string(next)).Inc()
	s.invalidateStats(ctx, visitor.ResidentID)
	s.logger.Info().
		Str("visitor_id", visitorID).
		Str("from", string(visitor.Status)).
		Str("to", string(next)).
		Str("actor_id", actor.ID).
		Msg("visitor status updated")
	return updated, nil
}

// invalidateStats drops the resident's cached dashboard counts. Best effort:
// a cache fault never fails the mutation.
func (s *VisitorService) invalidateStats(ctx context.Context, residentID string) {
	if s.cache == nil || residentID == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, residentID); err != nil {
		s.logger.Warn().Err(err).Str("resident_id", residentID).Msg("stats cache invalidation failed")
	}
}

// denialReason maps a lifecycle error to the denial metric label.
func denialReason(err error) string {
	if errors.Is(err, domain.ErrInvalidTransition) {
		return "invalid_transition"
	}
	return "forbidden"
}
