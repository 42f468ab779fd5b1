package ports

import (
	"context"
	"time"

	"github.com/societyhub/community-api/internal/core/domain"
)

// CreateVisitorInput carries the data logged at the gate.
type CreateVisitorInput struct {
	VisitorName  string
	VisitorPhone string
	FlatNumber   string
	ResidentID   string
	Purpose      string
}

// VisitorFilter narrows visitor list queries. Zero values mean no filter.
type VisitorFilter struct {
	ResidentID string
	Status     domain.VisitorStatus
}

// VisitorItem is a visitor entry with the visited resident's display info.
type VisitorItem struct {
	Visitor  domain.Visitor
	Resident *ProfileRef
}

// VisitorService defines use-case operations for visitor logging.
type VisitorService interface {
	// Create logs a visitor at the gate. Security and admin only.
	Create(ctx context.Context, actor domain.Actor, input CreateVisitorInput) (*domain.Visitor, error)
	// List returns visitors newest first. Residents see only their own
	// entries; admin and security see all.
	List(ctx context.Context, actor domain.Actor, status domain.VisitorStatus) ([]VisitorItem, error)
	Approve(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error)
	Reject(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error)
	// CheckOut moves an approved visitor out, stamping check_out_time.
	CheckOut(ctx context.Context, actor domain.Actor, visitorID string) (*domain.Visitor, error)
}

// VisitorRepository defines persistence operations for visitor entries.
type VisitorRepository interface {
	Create(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error)
	FindByID(ctx context.Context, id string) (*domain.Visitor, error)
	// List returns visitors matching filter, check_in_time desc.
	List(ctx context.Context, filter VisitorFilter) ([]*domain.Visitor, error)
	// UpdateStatus sets the status and, when checkOut is non-nil, the
	// check_out_time in the same write.
	UpdateStatus(ctx context.Context, id string, status domain.VisitorStatus, checkOut *time.Time) (*domain.Visitor, error)
	CountPending(ctx context.Context, residentID string) (int64, error)
}
