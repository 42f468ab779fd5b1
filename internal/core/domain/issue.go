package domain

import "time"

// IssueStatus represents the lifecycle state of a reported issue.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
)

// ValidIssueStatus reports whether s is a known issue status.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved:
		return true
	}
	return false
}

// IssueCategory classifies a reported issue.
type IssueCategory string

const (
	CategoryMaintenance  IssueCategory = "maintenance"
	CategorySecurity     IssueCategory = "security"
	CategoryHousekeeping IssueCategory = "housekeeping"
)

// ValidIssueCategory reports whether c is a known category.
func ValidIssueCategory(c IssueCategory) bool {
	switch c {
	case CategoryMaintenance, CategorySecurity, CategoryHousekeeping:
		return true
	}
	return false
}

// IssuePriority is the reporter-selected urgency band.
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
)

// ValidIssuePriority reports whether p is a known priority.
func ValidIssuePriority(p IssuePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// issueTransitions is monotonic: open → in_progress → resolved, with
// resolved reachable directly from open. All transitions are admin-only.
var issueTransitions = map[[2]IssueStatus]TransitionRule{
	{IssueOpen, IssueInProgress}:     {Roles: []string{RoleAdmin}},
	{IssueOpen, IssueResolved}:       {Roles: []string{RoleAdmin}},
	{IssueInProgress, IssueResolved}: {Roles: []string{RoleAdmin}},
}

// Issue is a maintenance/security/housekeeping report. IsSOS forces
// top-of-list ordering regardless of the stored priority.
type Issue struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	ReportedBy  string        `json:"reported_by" bson:"reported_by"`
	Category    IssueCategory `json:"category" bson:"category"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Status      IssueStatus   `json:"status" bson:"status"`
	Priority    IssuePriority `json:"priority" bson:"priority"`
	IsSOS       bool          `json:"is_sos" bson:"is_sos"`
	AssignedTo  string        `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// AuthorizeTransition checks reachability, then the role rule.
func (i *Issue) AuthorizeTransition(actor Actor, next IssueStatus) error {
	rule, ok := issueTransitions[[2]IssueStatus{i.Status, next}]
	if !ok {
		return ErrInvalidTransition
	}
	if !rule.Permits(actor, "") {
		return ErrForbidden
	}
	return nil
}

// AuthorizeSOSToggle permits admins to flip the SOS flag while the issue is
// unresolved. A resolved issue's flag is frozen.
func (i *Issue) AuthorizeSOSToggle(actor Actor) error {
	if i.Status == IssueResolved {
		return ErrInvalidTransition
	}
	if actor.Role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
