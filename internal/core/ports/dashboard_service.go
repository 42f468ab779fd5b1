package ports

import (
	"context"

	"github.com/societyhub/community-api/internal/core/domain"
)

// DashboardStats are the four summary counts shown on the dashboard.
type DashboardStats struct {
	PendingVisitors int64 `json:"pending_visitors"`
	UnpaidDues      int64 `json:"unpaid_dues"`
	RecentPosts     int64 `json:"recent_posts"`
	OpenIssues      int64 `json:"open_issues"`
}

// StatsCache is the read-side cache for dashboard stats, keyed by actor.
type StatsCache interface {
	// Get returns the cached stats for actorID, or (nil, nil) on a miss.
	Get(ctx context.Context, actorID string) (*DashboardStats, error)
	Set(ctx context.Context, actorID string, stats DashboardStats) error
	Invalidate(ctx context.Context, actorID string) error
}

// DashboardService computes the dashboard summary for an actor. Each count
// degrades to zero when its underlying query fails; the call as a whole
// never fails on a partial outage.
type DashboardService interface {
	Stats(ctx context.Context, actor domain.Actor) (DashboardStats, error)
}
