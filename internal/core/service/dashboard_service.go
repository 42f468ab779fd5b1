package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/api/metrics"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// recentPostsWindow is the trailing window for the recent-posts count.
const recentPostsWindow = 7 * 24 * time.Hour

// DashboardService computes the four dashboard counts. The counts are
// independent reads: each one degrades to zero when its query fails, so a
// single backend fault never blanks the whole dashboard.
//
// pendingVisitors and unpaidDues are scoped to the requesting actor even for
// admin and security viewers. That mirrors the reference behavior and is
// flagged as an open product question in DESIGN.md.
type DashboardService struct {
	visitors ports.VisitorRepository
	payments ports.PaymentRepository
	posts    ports.PostRepository
	issues   ports.IssueRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewDashboardService(
	visitors ports.VisitorRepository,
	payments ports.PaymentRepository,
	posts ports.PostRepository,
	issues ports.IssueRepository,
	cache ports.StatsCache,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		visitors: visitors,
		payments: payments,
		posts:    posts,
		issues:   issues,
		cache:    cache,
		logger:   logger,
	}
}

func (s *DashboardService) Stats(ctx context.Context, actor domain.Actor) (ports.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, actor.ID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		} else if cached != nil {
			metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
			return *cached, nil
		}
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
	}

	var (
		stats ports.DashboardStats
		wg    sync.WaitGroup
	)

	count := func(dst *int64, metric string, query func() (int64, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := query()
			if err != nil {
				metrics.DashboardQueryErrorsTotal.WithLabelValues(metric).Inc()
				s.logger.Warn().Err(err).Str("metric", metric).Msg("dashboard count failed, falling back to zero")
				return
			}
			*dst = n
		}()
	}

	since := time.Now().UTC().Add(-recentPostsWindow)
	count(&stats.PendingVisitors, "pending_visitors", func() (int64, error) {
		return s.visitors.CountPending(ctx, actor.ID)
	})
	count(&stats.UnpaidDues, "unpaid_dues", func() (int64, error) {
		return s.payments.CountPending(ctx, actor.ID)
	})
	count(&stats.RecentPosts, "recent_posts", func() (int64, error) {
		return s.posts.CountCreatedSince(ctx, since)
	})
	count(&stats.OpenIssues, "open_issues", func() (int64, error) {
		return s.issues.CountOpen(ctx)
	})
	wg.Wait()

	if s.cache != nil {
		if err := s.cache.Set(ctx, actor.ID, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}
