package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/api/metrics"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// IssueService implements issue reporting and the issue lifecycle.
type IssueService struct {
	issues   ports.IssueRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewIssueService(issues ports.IssueRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *IssueService {
	return &IssueService{issues: issues, profiles: profiles, logger: logger}
}

// Create files a new issue. Any authenticated actor may report. An SOS
// report is forced to high priority regardless of the selected value.
func (s *IssueService) Create(ctx context.Context, actor domain.Actor, input ports.CreateIssueInput) (*domain.Issue, error) {
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if !domain.ValidIssueCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidIssuePriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, input.Priority)
	}
	if input.IsSOS {
		priority = domain.PriorityHigh
	}

	now := time.Now().UTC()
	issue := &domain.Issue{
		ReportedBy:  actor.ID,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.IssueOpen,
		Priority:    priority,
		IsSOS:       input.IsSOS,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.issues.Create(ctx, issue)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create issue")
		return nil, err
	}

	metrics.IssuesCreatedTotal.WithLabelValues(string(input.Category), strconv.FormatBool(input.IsSOS)).Inc()
	s.logger.Info().
		Str("issue_id", created.ID).
		Str("category", string(created.Category)).
		Bool("sos", created.IsSOS).
		Msg("issue reported")
	return created, nil
}

// List returns issues with reporter/assignee display info attached: SOS
// issues first by recency, then the rest newest first.
func (s *IssueService) List(ctx context.Context, filter ports.IssueFilter) ([]ports.IssueItem, error) {
	if filter.Status != "" && !domain.ValidIssueStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown issue status %q", domain.ErrValidation, filter.Status)
	}
	if filter.Category != "" && !domain.ValidIssueCategory(filter.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, filter.Category)
	}

	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(issues)*2)
	seen := make(map[string]struct{}, len(issues)*2)
	collect := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, i := range issues {
		collect(i.ReportedBy)
		collect(i.AssignedTo)
	}
	refs, err := profileRefs(ctx, s.profiles, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ports.IssueItem, 0, len(issues))
	for _, i := range issues {
		items = append(items, ports.IssueItem{
			Issue:    *i,
			Reporter: refs[i.ReportedBy],
			Assignee: refs[i.AssignedTo],
		})
	}
	return items, nil
}

// Transition moves an issue along open → in_progress → resolved. Admin only;
// resolved is terminal.
func (s *IssueService) Transition(ctx context.Context, actor domain.Actor, issueID string, next domain.IssueStatus) (*domain.Issue, error) {
	if !domain.ValidIssueStatus(next) {
		return nil, fmt.Errorf("%w: unknown issue status %q", domain.ErrValidation, next)
	}

	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if err := issue.AuthorizeTransition(actor, next); err != nil {
		metrics.TransitionDenialsTotal.WithLabelValues("issue", denialReason(err)).Inc()
		return nil, fmt.Errorf("issue %s: %s → %s: %w", issueID, issue.Status, next, err)
	}

	updated, err := s.issues.UpdateStatus(ctx, issueID, next, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("issue_id", issueID).Msg("failed to update issue status")
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues("issue", string(issue.Status), string(next)).Inc()
	s.logger.Info().
		Str("issue_id", issueID).
		Str("from", string(issue.Status)).
		Str("to", string(next)).
		Str("actor_id", actor.ID).
		Msg("issue status updated")
	return updated, nil
}

// SetSOS toggles the SOS flag on an unresolved issue. Admin only; the flag
// freezes once the issue is resolved. Toggling never rewrites the stored
// priority — the creation-time force applies only at creation.
func (s *IssueService) SetSOS(ctx context.Context, actor domain.Actor, issueID string, sos bool) (*domain.Issue, error) {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if err := issue.AuthorizeSOSToggle(actor); err != nil {
		metrics.TransitionDenialsTotal.WithLabelValues("issue", denialReason(err)).Inc()
		return nil, fmt.Errorf("issue %s: sos toggle: %w", issueID, err)
	}

	updated, err := s.issues.SetSOS(ctx, issueID, sos, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("issue_id", issueID).Msg("failed to toggle sos flag")
		return nil, err
	}

	s.logger.Info().Str("issue_id", issueID).Bool("sos", sos).Str("actor_id", actor.ID).Msg("issue sos flag updated")
	return updated, nil
}
