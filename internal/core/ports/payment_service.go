package ports

import (
	"context"
	"time"

	"github.com/societyhub/community-api/internal/core/domain"
)

// CreatePaymentInput carries the data for a new maintenance due. When
// ApplyToAll is set, ResidentID is ignored and one payment is created per
// resident currently registered.
type CreatePaymentInput struct {
	ResidentID  string
	Amount      float64
	Description string
	DueDate     time.Time
	ApplyToAll  bool
}

// PaymentItem is a payment with the resident's display info and the derived
// overdue flag attached.
type PaymentItem struct {
	Payment  domain.Payment
	Resident *ProfileRef
	Overdue  bool
}

// PaymentService defines use-case operations for maintenance dues.
type PaymentService interface {
	// Create raises one due (or one per resident with ApplyToAll). Admin
	// only. Batch creation is all-or-nothing.
	Create(ctx context.Context, actor domain.Actor, input CreatePaymentInput) ([]*domain.Payment, error)
	// List returns payments due_date desc. Residents see only their own.
	List(ctx context.Context, actor domain.Actor) ([]PaymentItem, error)
	// MarkPaid records the resident's payment with its transaction reference.
	MarkPaid(ctx context.Context, actor domain.Actor, paymentID, transactionID string) (*domain.Payment, error)
	// Verify confirms a paid due. Admin only.
	Verify(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	// CreateBatch inserts all payments atomically: on any failure no row is
	// committed.
	CreateBatch(ctx context.Context, payments []*domain.Payment) ([]*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	// List returns payments due_date desc, optionally scoped to a resident.
	List(ctx context.Context, residentID string) ([]*domain.Payment, error)
	MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) (*domain.Payment, error)
	MarkVerified(ctx context.Context, id, verifiedBy string, verifiedAt time.Time) (*domain.Payment, error)
	CountPending(ctx context.Context, residentID string) (int64, error)
}
