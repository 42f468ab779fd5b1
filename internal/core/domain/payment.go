package domain

import "time"

// PaymentStatus represents the lifecycle state of a maintenance due.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentVerified PaymentStatus = "verified"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentVerified:
		return true
	}
	return false
}

// paymentTransitions is linear: pending → paid → verified. No skipping,
// no reverse.
var paymentTransitions = map[[2]PaymentStatus]TransitionRule{
	{PaymentPending, PaymentPaid}:  {Roles: []string{RoleResident}, OwnerOnly: true},
	{PaymentPaid, PaymentVerified}: {Roles: []string{RoleAdmin}},
}

// Payment is a maintenance due raised by an admin against a resident.
// TransactionID/PaidAt populate only on pending→paid; VerifiedBy/VerifiedAt
// only on paid→verified.
type Payment struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	ResidentID    string        `json:"resident_id" bson:"resident_id"`
	Amount        float64       `json:"amount" bson:"amount"`
	Description   string        `json:"description" bson:"description"`
	DueDate       time.Time     `json:"due_date" bson:"due_date"`
	Status        PaymentStatus `json:"status" bson:"status"`
	TransactionID string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	VerifiedBy    string        `json:"verified_by,omitempty" bson:"verified_by,omitempty"`
	VerifiedAt    *time.Time    `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}

// AuthorizeTransition checks reachability, then the role/ownership rule.
func (p *Payment) AuthorizeTransition(actor Actor, next PaymentStatus) error {
	rule, ok := paymentTransitions[[2]PaymentStatus{p.Status, next}]
	if !ok {
		return ErrInvalidTransition
	}
	if !rule.Permits(actor, p.ResidentID) {
		return ErrForbidden
	}
	return nil
}

// IsOverdue reports whether the payment is still pending past its due date.
// Derived on every read, never stored.
func (p *Payment) IsOverdue(now time.Time) bool {
	return p.Status == PaymentPending && p.DueDate.Before(now)
}
