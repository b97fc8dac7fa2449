package billing

import (
	"errors"
	"testing"

	"billing-app/internal/domain/plans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func starterPlan() *plans.Plan {
	return &plans.Plan{
		ID:           1,
		Slug:         "starter",
		Name:         "Starter",
		Description:  "For small teams",
		PriceMonthly: 1900,
		PriceYearly:  18200,
		IsActive:     true,
	}
}

func TestSyncPlanCreatesProductAndBothPrices(t *testing.T) {
	plan := starterPlan()
	store := &fakeStore{
		planByID: func(id uint) (*plans.Plan, error) { return plan, nil },
	}

	var createdAmounts []int64
	provider := &fakeProvider{
		createProduct: func(planID uint, name, description string, active bool) (*stripe.Product, error) {
			assert.Equal(t, uint(1), planID)
			assert.Equal(t, "Starter", name)
			assert.True(t, active)
			return &stripe.Product{ID: "prod_1"}, nil
		},
		createPrice: func(productID, interval, currency string, amount int64) (*stripe.Price, error) {
			assert.Equal(t, "prod_1", productID)
			assert.Equal(t, "usd", currency)
			createdAmounts = append(createdAmounts, amount)
			return &stripe.Price{ID: "price_" + interval}, nil
		},
	}

	syncer := NewCatalogSyncer(store, provider, "usd")
	got, err := syncer.SyncPlan(1)
	require.NoError(t, err)

	require.NotNil(t, got.StripeProductID)
	assert.Equal(t, "prod_1", *got.StripeProductID)
	require.NotNil(t, got.StripePriceMonthlyID)
	assert.Equal(t, "price_monthly", *got.StripePriceMonthlyID)
	require.NotNil(t, got.StripePriceYearlyID)
	assert.Equal(t, "price_yearly", *got.StripePriceYearlyID)

	assert.Equal(t, []string{"monthly", "yearly"}, provider.priceCalls)
	assert.Equal(t, []int64{1900, 18200}, createdAmounts)
}

func TestSyncPlanIsIdempotent(t *testing.T) {
	plan := starterPlan()
	store := &fakeStore{
		planByID: func(id uint) (*plans.Plan, error) { return plan, nil },
	}
	provider := &fakeProvider{
		findProduct: func(planID uint) (*stripe.Product, error) {
			if plan.StripeProductID != nil {
				return &stripe.Product{ID: *plan.StripeProductID}, nil
			}
			return nil, nil
		},
	}

	syncer := NewCatalogSyncer(store, provider, "usd")

	first, err := syncer.SyncPlan(1)
	require.NoError(t, err)
	monthly, yearly := *first.StripePriceMonthlyID, *first.StripePriceYearlyID

	second, err := syncer.SyncPlan(1)
	require.NoError(t, err)

	assert.Equal(t, monthly, *second.StripePriceMonthlyID)
	assert.Equal(t, yearly, *second.StripePriceYearlyID)
	// Two prices total across both runs: existing ids are never replaced.
	assert.Len(t, provider.priceCalls, 2)
}

func TestSyncPlanFillsOnlyMissingPrice(t *testing.T) {
	plan := starterPlan()
	plan.StripeProductID = strPtr("prod_1")
	plan.StripePriceMonthlyID = strPtr("price_existing_monthly")

	store := &fakeStore{
		planByID: func(id uint) (*plans.Plan, error) { return plan, nil },
	}
	provider := &fakeProvider{
		findProduct: func(planID uint) (*stripe.Product, error) {
			return &stripe.Product{ID: "prod_1"}, nil
		},
	}

	syncer := NewCatalogSyncer(store, provider, "usd")
	got, err := syncer.SyncPlan(1)
	require.NoError(t, err)

	assert.Equal(t, "price_existing_monthly", *got.StripePriceMonthlyID)
	assert.Equal(t, []string{"yearly"}, provider.priceCalls)
}

func TestSyncPlanUnknownPlan(t *testing.T) {
	syncer := NewCatalogSyncer(&fakeStore{}, &fakeProvider{}, "usd")

	_, err := syncer.SyncPlan(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSyncAllPlansBuckets(t *testing.T) {
	ready := plans.Plan{
		ID: 1, Slug: "starter", IsActive: true,
		StripePriceMonthlyID: strPtr("price_m"),
		StripePriceYearlyID:  strPtr("price_y"),
	}
	pending := plans.Plan{ID: 2, Slug: "professional", Name: "Professional", IsActive: true}
	broken := plans.Plan{ID: 3, Slug: "enterprise", Name: "Enterprise", IsActive: true}

	byID := map[uint]*plans.Plan{2: &pending, 3: &broken}
	store := &fakeStore{
		activePlans: func() ([]plans.Plan, error) {
			return []plans.Plan{ready, pending, broken}, nil
		},
		planByID: func(id uint) (*plans.Plan, error) { return byID[id], nil },
	}
	provider := &fakeProvider{
		createProduct: func(planID uint, name, description string, active bool) (*stripe.Product, error) {
			if planID == 3 {
				return nil, errors.New("provider unavailable")
			}
			return &stripe.Product{ID: "prod_2"}, nil
		},
	}

	syncer := NewCatalogSyncer(store, provider, "usd")
	report, err := syncer.SyncAllPlans()
	require.NoError(t, err)

	assert.Equal(t, []string{"professional"}, report.Synced)
	assert.Equal(t, []string{"starter"}, report.Skipped)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "enterprise", report.Failed[0].Slug)
	assert.Contains(t, report.Failed[0].Error, "provider unavailable")
}
