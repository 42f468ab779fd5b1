package ports

import (
	"context"
	"time"

	"github.com/societyhub/community-api/internal/core/domain"
)

// CreateIssueInput carries the data for a new issue report.
type CreateIssueInput struct {
	Category    domain.IssueCategory
	Title       string
	Description string
	Priority    domain.IssuePriority
	IsSOS       bool
}

// IssueFilter narrows issue list queries. Zero values mean no filter.
// Priority is deliberately not a filter; callers needing priority grouping
// do it client-side.
type IssueFilter struct {
	Status   domain.IssueStatus
	Category domain.IssueCategory
}

// IssueItem is an issue with reporter and assignee display info attached.
type IssueItem struct {
	Issue    domain.Issue
	Reporter *ProfileRef
	Assignee *ProfileRef
}

// IssueService defines use-case operations for issue reporting.
type IssueService interface {
	// Create files an issue. Any authenticated actor. IsSOS forces priority
	// to high at creation time.
	Create(ctx context.Context, actor domain.Actor, input CreateIssueInput) (*domain.Issue, error)
	// List returns SOS issues first by recency, then the rest newest first.
	List(ctx context.Context, filter IssueFilter) ([]IssueItem, error)
	// Transition moves an issue along open → in_progress → resolved. Admin only.
	Transition(ctx context.Context, actor domain.Actor, issueID string, next domain.IssueStatus) (*domain.Issue, error)
	// SetSOS toggles the SOS flag on an unresolved issue. Admin only.
	SetSOS(ctx context.Context, actor domain.Actor, issueID string, sos bool) (*domain.Issue, error)
}

// IssueRepository defines persistence operations for issues.
type IssueRepository interface {
	Create(ctx context.Context, i *domain.Issue) (*domain.Issue, error)
	FindByID(ctx context.Context, id string) (*domain.Issue, error)
	// List returns issues matching filter, ordered is_sos desc, created_at desc.
	List(ctx context.Context, filter IssueFilter) ([]*domain.Issue, error)
	UpdateStatus(ctx context.Context, id string, status domain.IssueStatus, updatedAt time.Time) (*domain.Issue, error)
	SetSOS(ctx context.Context, id string, sos bool, updatedAt time.Time) (*domain.Issue, error)
	// CountOpen counts issues with status open or in_progress.
	CountOpen(ctx context.Context) (int64, error)
}
