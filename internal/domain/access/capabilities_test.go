package access

import (
	"testing"

	"billing-app/internal/domain/plans"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	one := 1
	ten := 10

	seated := &plans.Plan{Slug: "professional", MaxSeats: &ten}
	solo := &plans.Plan{Slug: "starter", MaxSeats: &one}
	unlimited := &plans.Plan{Slug: "enterprise"}

	tests := []struct {
		name  string
		state AccessState
		plan  *plans.Plan
		want  []string
	}{
		{"locked keeps billing reachable", AccessLocked, nil, []string{"manage_billing"}},
		{"limited keeps billing reachable", AccessLimited, seated, []string{"manage_billing"}},
		{"trial gets product without seats", AccessTrial, seated, []string{"manage_billing", "use_product"}},
		{"full solo plan", AccessFull, solo, []string{"manage_billing", "use_product"}},
		{"full seated plan", AccessFull, seated, []string{"manage_billing", "use_product", "invite_seats"}},
		{"full uncapped plan", AccessFull, unlimited, []string{"manage_billing", "use_product", "invite_seats"}},
		{"full without plan row", AccessFull, nil, []string{"manage_billing", "use_product"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesFor(tt.state, tt.plan))
		})
	}
}
