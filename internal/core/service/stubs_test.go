package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// In-memory stubs shared by the service tests. Each mirrors the filtering and
// ordering contract of its Mongo counterpart closely enough for the services
// to be exercised against realistic data.

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- profiles ---

type stubProfileRepo struct {
	byID    map[string]*domain.Profile
	nextID  int
	findErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) add(p *domain.Profile) *domain.Profile {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("profile_%d", r.nextID)
	}
	r.byID[p.ID] = cloneProfile(p)
	return cloneProfile(p)
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	for _, existing := range r.byID {
		if existing.Email == p.Email {
			return nil, domain.ErrProfileExists
		}
	}
	return r.add(p), nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.byID {
		if p.Email == email {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	found := make(map[string]*domain.Profile)
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			found[id] = cloneProfile(p)
		}
	}
	return found, nil
}

func (r *stubProfileRepo) ListByRole(_ context.Context, role string) ([]*domain.Profile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var matched []*domain.Profile
	for _, p := range r.byID {
		if p.Role == role {
			matched = append(matched, cloneProfile(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].FlatNumber < matched[j].FlatNumber })
	return matched, nil
}

func (r *stubProfileRepo) Update(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if upd.FullName != nil {
		p.FullName = *upd.FullName
	}
	if upd.FlatNumber != nil {
		p.FlatNumber = *upd.FlatNumber
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProfile(p), nil
}

// --- visitors ---

type stubVisitorRepo struct {
	byID      map[string]*domain.Visitor
	nextID    int
	createErr error
	countErr  error
}

func newStubVisitorRepo() *stubVisitorRepo {
	return &stubVisitorRepo{byID: make(map[string]*domain.Visitor)}
}

func cloneVisitor(v *domain.Visitor) *domain.Visitor {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func (r *stubVisitorRepo) Create(_ context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	v.ID = fmt.Sprintf("visitor_%d", r.nextID)
	r.byID[v.ID] = cloneVisitor(v)
	return cloneVisitor(v), nil
}

func (r *stubVisitorRepo) FindByID(_ context.Context, id string) (*domain.Visitor, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	return cloneVisitor(v), nil
}

func (r *stubVisitorRepo) List(_ context.Context, filter ports.VisitorFilter) ([]*domain.Visitor, error) {
	var matched []*domain.Visitor
	for _, v := range r.byID {
		if filter.ResidentID != "" && v.ResidentID != filter.ResidentID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneVisitor(v))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CheckInTime.After(matched[j].CheckInTime) })
	return matched, nil
}

func (r *stubVisitorRepo) UpdateStatus(_ context.Context, id string, status domain.VisitorStatus, checkOut *time.Time) (*domain.Visitor, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	v.Status = status
	if checkOut != nil {
		v.CheckOutTime = checkOut
	}
	return cloneVisitor(v), nil
}

func (r *stubVisitorRepo) CountPending(_ context.Context, residentID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, v := range r.byID {
		if v.Status == domain.VisitorPending && v.ResidentID == residentID {
			n++
		}
	}
	return n, nil
}

// --- payments ---

type stubPaymentRepo struct {
	byID     map[string]*domain.Payment
	nextID   int
	batchErr error
	countErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byID: make(map[string]*domain.Payment)}
}

func clonePayment(p *domain.Payment) *domain.Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.nextID++
	p.ID = fmt.Sprintf("payment_%d", r.nextID)
	r.byID[p.ID] = clonePayment(p)
	return clonePayment(p), nil
}

// CreateBatch honours the all-or-nothing contract: on error nothing is stored.
func (r *stubPaymentRepo) CreateBatch(_ context.Context, payments []*domain.Payment) ([]*domain.Payment, error) {
	if r.batchErr != nil {
		return nil, r.batchErr
	}
	created := make([]*domain.Payment, 0, len(payments))
	for _, p := range payments {
		r.nextID++
		p.ID = fmt.Sprintf("payment_%d", r.nextID)
		r.byID[p.ID] = clonePayment(p)
		created = append(created, clonePayment(p))
	}
	return created, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

func (r *stubPaymentRepo) List(_ context.Context, residentID string) ([]*domain.Payment, error) {
	var matched []*domain.Payment
	for _, p := range r.byID {
		if residentID != "" && p.ResidentID != residentID {
			continue
		}
		matched = append(matched, clonePayment(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].DueDate.After(matched[j].DueDate) })
	return matched, nil
}

func (r *stubPaymentRepo) MarkPaid(_ context.Context, id, transactionID string, paidAt time.Time) (*domain.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	p.Status = domain.PaymentPaid
	p.TransactionID = transactionID
	p.PaidAt = &paidAt
	return clonePayment(p), nil
}

func (r *stubPaymentRepo) MarkVerified(_ context.Context, id, verifiedBy string, verifiedAt time.Time) (*domain.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	p.Status = domain.PaymentVerified
	p.VerifiedBy = verifiedBy
	p.VerifiedAt = &verifiedAt
	return clonePayment(p), nil
}

func (r *stubPaymentRepo) CountPending(_ context.Context, residentID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, p := range r.byID {
		if p.Status == domain.PaymentPending && p.ResidentID == residentID {
			n++
		}
	}
	return n, nil
}

// --- issues ---

type stubIssueRepo struct {
	byID     map[string]*domain.Issue
	nextID   int
	countErr error
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{byID: make(map[string]*domain.Issue)}
}

func cloneIssue(i *domain.Issue) *domain.Issue {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubIssueRepo) Create(_ context.Context, i *domain.Issue) (*domain.Issue, error) {
	r.nextID++
	i.ID = fmt.Sprintf("issue_%d", r.nextID)
	r.byID[i.ID] = cloneIssue(i)
	return cloneIssue(i), nil
}

func (r *stubIssueRepo) FindByID(_ context.Context, id string) (*domain.Issue, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	return cloneIssue(i), nil
}

func (r *stubIssueRepo) List(_ context.Context, filter ports.IssueFilter) ([]*domain.Issue, error) {
	var matched []*domain.Issue
	for _, i := range r.byID {
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		if filter.Category != "" && i.Category != filter.Category {
			continue
		}
		matched = append(matched, cloneIssue(i))
	}
	sort.Slice(matched, func(a, b int) bool {
		if matched[a].IsSOS != matched[b].IsSOS {
			return matched[a].IsSOS
		}
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})
	return matched, nil
}

func (r *stubIssueRepo) UpdateStatus(_ context.Context, id string, status domain.IssueStatus, updatedAt time.Time) (*domain.Issue, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	i.Status = status
	i.UpdatedAt = updatedAt
	return cloneIssue(i), nil
}

func (r *stubIssueRepo) SetSOS(_ context.Context, id string, sos bool, updatedAt time.Time) (*domain.Issue, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	i.IsSOS = sos
	i.UpdatedAt = updatedAt
	return cloneIssue(i), nil
}

func (r *stubIssueRepo) CountOpen(_ context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, i := range r.byID {
		if i.Status == domain.IssueOpen || i.Status == domain.IssueInProgress {
			n++
		}
	}
	return n, nil
}

// --- posts ---

type stubPostRepo struct {
	byID     map[string]*domain.Post
	nextID   int
	countErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.nextID++
	p.ID = fmt.Sprintf("post_%d", r.nextID)
	r.byID[p.ID] = clonePost(p)
	return clonePost(p), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	var matched []*domain.Post
	for _, p := range r.byID {
		matched = append(matched, clonePost(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsPinned != matched[j].IsPinned {
			return matched[i].IsPinned
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubPostRepo) SetPinned(_ context.Context, id string, pinned bool, updatedAt time.Time) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.IsPinned = pinned
	p.UpdatedAt = updatedAt
	return clonePost(p), nil
}

func (r *stubPostRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, p := range r.byID {
		if p.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

// --- stats cache ---

type stubStatsCache struct {
	entries     map[string]ports.DashboardStats
	invalidated []string
	getErr      error
	setErr      error
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]ports.DashboardStats)}
}

func (c *stubStatsCache) Get(_ context.Context, actorID string) (*ports.DashboardStats, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	stats, ok := c.entries[actorID]
	if !ok {
		return nil, nil
	}
	clone := stats
	return &clone, nil
}

func (c *stubStatsCache) Set(_ context.Context, actorID string, stats ports.DashboardStats) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[actorID] = stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, actorID string) error {
	delete(c.entries, actorID)
	c.invalidated = append(c.invalidated, actorID)
	return nil
}
