package domain

import "time"

// VisitorStatus represents the lifecycle state of a visitor entry.
type VisitorStatus string

const (
	VisitorPending    VisitorStatus = "pending"
	VisitorApproved   VisitorStatus = "approved"
	VisitorRejected   VisitorStatus = "rejected"
	VisitorCheckedOut VisitorStatus = "checked_out"
)

// ValidVisitorStatus reports whether s is a known visitor status.
func ValidVisitorStatus(s VisitorStatus) bool {
	switch s {
	case VisitorPending, VisitorApproved, VisitorRejected, VisitorCheckedOut:
		return true
	}
	return false
}

// visitorTransitions is the declarative transition table: (from, to) → rule.
// rejected and checked_out are terminal — they have no outgoing entries.
var visitorTransitions = map[[2]VisitorStatus]TransitionRule{
	{VisitorPending, VisitorApproved}:    {Roles: []string{RoleResident}, OwnerOnly: true},
	{VisitorPending, VisitorRejected}:    {Roles: []string{RoleResident}, OwnerOnly: true},
	{VisitorApproved, VisitorCheckedOut}: {Roles: []string{RoleSecurity, RoleAdmin}},
}

// Visitor is a gate entry logged by security or an admin.
type Visitor struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	VisitorName  string        `json:"visitor_name" bson:"visitor_name"`
	VisitorPhone string        `json:"visitor_phone" bson:"visitor_phone"`
	FlatNumber   string        `json:"flat_number" bson:"flat_number"`
	ResidentID   string        `json:"resident_id,omitempty" bson:"resident_id,omitempty"`
	Purpose      string        `json:"purpose,omitempty" bson:"purpose,omitempty"`
	Status       VisitorStatus `json:"status" bson:"status"`
	CheckInTime  time.Time     `json:"check_in_time" bson:"check_in_time"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	AddedBy      string        `json:"added_by" bson:"added_by"`
}

// AuthorizeTransition checks reachability first, then the role/ownership
// rule. Unreachable targets (including no-ops and backward moves) fail with
// ErrInvalidTransition; reachable targets the actor may not perform fail
// with ErrForbidden.
func (v *Visitor) AuthorizeTransition(actor Actor, next VisitorStatus) error {
	rule, ok := visitorTransitions[[2]VisitorStatus{v.Status, next}]
	if !ok {
		return ErrInvalidTransition
	}
	if !rule.Permits(actor, v.ResidentID) {
		return ErrForbidden
	}
	return nil
}
