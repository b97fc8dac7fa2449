package access

import (
	"billing-app/internal/domain/plans"
)

// CapabilitiesFor lists what the product surface may offer in a state.
// Billing management is always reachable: locked users need it to subscribe
// and limited ones to fix a failing payment.
func CapabilitiesFor(state AccessState, plan *plans.Plan) []string {
	if state == AccessLocked || state == AccessLimited {
		return []string{"manage_billing"}
	}

	caps := []string{"manage_billing", "use_product"}

	// trial
	if state == AccessTrial {
		return caps
	}

	// full: seat-based extras come from the plan row
	if plan != nil && (plan.MaxSeats == nil || *plan.MaxSeats > 1) {
		caps = append(caps, "invite_seats")
	}
	return caps
}
