package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/societyhub/community-api/internal/api/metrics"
	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// PaymentService implements maintenance-due creation and the payment
// lifecycle.
type PaymentService struct {
	payments ports.PaymentRepository
	profiles ports.ProfileRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, profiles ports.ProfileRepository, cache ports.StatsCache, logger zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, profiles: profiles, cache: cache, logger: logger}
}

// Create raises a maintenance due. Admin only. With ApplyToAll one due is
// created per registered resident, all sharing amount/description/due_date;
// the batch insert is all-or-nothing.
func (s *PaymentService) Create(ctx context.Context, actor domain.Actor, input ports.CreatePaymentInput) ([]*domain.Payment, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", domain.ErrValidation)
	}

	now := time.Now().UTC()

	if input.ApplyToAll {
		residents, err := s.profiles.ListByRole(ctx, domain.RoleResident)
		if err != nil {
			return nil, err
		}
		if len(residents) == 0 {
			return nil, fmt.Errorf("%w: no residents registered", domain.ErrValidation)
		}

		batch := make([]*domain.Payment, 0, len(residents))
		for _, r := range residents {
			batch = append(batch, &domain.Payment{
				ResidentID:  r.ID,
				Amount:      input.Amount,
				Description: input.Description,
				DueDate:     input.DueDate,
				Status:      domain.PaymentPending,
				CreatedAt:   now,
			})
		}

		created, err := s.payments.CreateBatch(ctx, batch)
		if err != nil {
			s.logger.Error().Err(err).Int("residents", len(residents)).Msg("batch payment creation failed")
			return nil, err
		}

		metrics.PaymentsCreatedTotal.WithLabelValues("batch").Add(float64(len(created)))
		for _, p := range created {
			s.invalidateStats(ctx, p.ResidentID)
		}
		s.logger.Info().Int("count", len(created)).Str("description", input.Description).Msg("batch payment dues created")
		return created, nil
	}

	if input.ResidentID == "" {
		return nil, fmt.Errorf("%w: resident is required", domain.ErrValidation)
	}
	resident, err := s.profiles.FindByID(ctx, input.ResidentID)
	if err != nil {
		return nil, err
	}
	if resident.Role != domain.RoleResident {
		return nil, fmt.Errorf("%w: dues can only be raised against residents", domain.ErrValidation)
	}

	payment := &domain.Payment{
		ResidentID:  resident.ID,
		Amount:      input.Amount,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create payment due")
		return nil, err
	}

	metrics.PaymentsCreatedTotal.WithLabelValues("single").Inc()
	s.invalidateStats(ctx, created.ResidentID)
	s.logger.Info().Str("payment_id", created.ID).Str("resident_id", created.ResidentID).Msg("payment due created")
	return []*domain.Payment{created}, nil
}

// List returns payments due_date desc with resident display info and the
// derived overdue flag. Residents see only their own dues.
func (s *PaymentService) List(ctx context.Context, actor domain.Actor) ([]ports.PaymentItem, error) {
	residentID := ""
	if actor.Role == domain.RoleResident {
		residentID = actor.ID
	}

	payments, err := s.payments.List(ctx, residentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payments))
	seen := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.ResidentID]; ok {
			continue
		}
		seen[p.ResidentID] = struct{}{}
		ids = append(ids, p.ResidentID)
	}
	refs, err := profileRefs(ctx, s.profiles, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]ports.PaymentItem, 0, len(payments))
	for _, p := range payments {
		items = append(items, ports.PaymentItem{
			Payment:  *p,
			Resident: refs[p.ResidentID],
			Overdue:  p.IsOverdue(now),
		})
	}
	return items, nil
}

// MarkPaid records the owning resident's payment along with its transaction
// reference, stamping transaction_id and paid_at with the status change.
func (s *PaymentService) MarkPaid(ctx context.Context, actor domain.Actor, paymentID, transactionID string) (*domain.Payment, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction reference is required", domain.ErrValidation)
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.AuthorizeTransition(actor, domain.PaymentPaid); err != nil {
		metrics.TransitionDenialsTotal.WithLabelValues("payment", denialReason(err)).Inc()
		return nil, fmt.Errorf("payment %s: %s → %s: %w", paymentID, payment.Status, domain.PaymentPaid, err)
	}

	updated, err := s.payments.MarkPaid(ctx, paymentID, transactionID, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("payment_id", paymentID).Msg("failed to mark payment paid")
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues("payment", string(domain.PaymentPending), string(domain.PaymentPaid)).Inc()
	s.invalidateStats(ctx, payment.ResidentID)
	s.logger.Info().Str("payment_id", paymentID).Str("transaction_id", transactionID).Msg("payment marked paid")
	return updated, nil
}

// Verify confirms a paid due, stamping verified_by and verified_at. Admin
// only.
func (s *PaymentService) Verify(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.AuthorizeTransition(actor, domain.PaymentVerified); err != nil {
		metrics.TransitionDenialsTotal.WithLabelValues("payment", denialReason(err)).Inc()
		return nil, fmt.Errorf("payment %s: %s → %s: %w", paymentID, payment.Status, domain.PaymentVerified, err)
	}

	updated, err := s.payments.MarkVerified(ctx, paymentID, actor.ID, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Str("payment_id", paymentID).Msg("failed to verify payment")
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues("payment", string(domain.PaymentPaid), string(domain.PaymentVerified)).Inc()
	s.invalidateStats(ctx, payment.ResidentID)
	s.logger.Info().Str("payment_id", paymentID).Str("verified_by", actor.ID).Msg("payment verified")
	return updated, nil
}

func (s *PaymentService) invalidateStats(ctx context.Context, residentID string) {
	if s.cache == nil || residentID == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, residentID); err != nil {
		s.logger.Warn().Err(err).Str("resident_id", residentID).Msg("stats cache invalidation failed")
	}
}
