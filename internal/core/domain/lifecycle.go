package domain

// TransitionRule describes who may perform a single status transition.
// Roles is the set of roles the actor may hold; when OwnerOnly is set the
// actor must additionally be the entity's owning resident.
type TransitionRule struct {
	Roles     []string
	OwnerOnly bool
}

// Permits reports whether actor satisfies the rule for an entity owned by
// ownerID. An empty ownerID never matches an OwnerOnly rule.
func (r TransitionRule) Permits(actor Actor, ownerID string) bool {
	roleOK := false
	for _, role := range r.Roles {
		if actor.Role == role {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return false
	}
	if r.OwnerOnly && (ownerID == "" || actor.ID != ownerID) {
		return false
	}
	return true
}
