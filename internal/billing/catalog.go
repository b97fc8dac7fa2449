package billing

import (
	"fmt"
	"log"

	"billing-app/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
)

type CatalogStore interface {
	PlanByID(id uint) (*plans.Plan, error)
	ActivePlans() ([]plans.Plan, error)
	SavePlan(plan *plans.Plan) error
}

type CatalogProvider interface {
	FindProductByPlanID(planID uint) (*stripe.Product, error)
	CreateProduct(planID uint, name, description string, active bool) (*stripe.Product, error)
	UpdateProduct(productID, name, description string, active bool) (*stripe.Product, error)
	CreateRecurringPrice(productID, interval, currency string, amount int64) (*stripe.Price, error)
}

// CatalogSyncer pushes local plans to the provider catalog. Products are
// matched by their plan_id metadata tag; prices are immutable and only ever
// created, never edited. Changing an amount therefore needs the price id
// column cleared and a re-sync.
type CatalogSyncer struct {
	store    CatalogStore
	provider CatalogProvider
	currency string
}

func NewCatalogSyncer(store CatalogStore, provider CatalogProvider, currency string) *CatalogSyncer {
	if currency == "" {
		currency = "usd"
	}
	return &CatalogSyncer{store: store, provider: provider, currency: currency}
}

// SyncPlan reconciles one plan with the provider: find the tagged product or
// create it, refresh its display fields, then create whichever recurring
// prices the plan does not record yet. Every acquired provider id is
// persisted before the next provider call, so a failed sync never loses ids.
func (s *CatalogSyncer) SyncPlan(planID uint) (*plans.Plan, error) {
	plan, err := s.store.PlanByID(planID)
	if err != nil {
		return nil, fmt.Errorf("load plan %d: %w", planID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPlanNotFound, planID)
	}

	product, err := s.provider.FindProductByPlanID(plan.ID)
	if err != nil {
		return nil, fmt.Errorf("find product for plan %s: %w", plan.Slug, err)
	}

	if product == nil {
		product, err = s.provider.CreateProduct(plan.ID, plan.Name, plan.Description, plan.IsActive)
		if err != nil {
			return nil, fmt.Errorf("create product for plan %s: %w", plan.Slug, err)
		}
		log.Printf("✅ catalog: created product %s for plan %s", product.ID, plan.Slug)
	} else {
		product, err = s.provider.UpdateProduct(product.ID, plan.Name, plan.Description, plan.IsActive)
		if err != nil {
			return nil, fmt.Errorf("update product for plan %s: %w", plan.Slug, err)
		}
	}

	plan.StripeProductID = &product.ID
	if err := s.store.SavePlan(plan); err != nil {
		return nil, fmt.Errorf("save plan %s: %w", plan.Slug, err)
	}

	if plan.PriceIDFor(plans.IntervalMonthly) == "" {
		price, err := s.provider.CreateRecurringPrice(product.ID, plans.IntervalMonthly, s.currency, plan.PriceMonthly)
		if err != nil {
			return nil, fmt.Errorf("create monthly price for plan %s: %w", plan.Slug, err)
		}
		plan.StripePriceMonthlyID = &price.ID
		if err := s.store.SavePlan(plan); err != nil {
			return nil, fmt.Errorf("save plan %s: %w", plan.Slug, err)
		}
	}

	if plan.PriceIDFor(plans.IntervalYearly) == "" {
		price, err := s.provider.CreateRecurringPrice(product.ID, plans.IntervalYearly, s.currency, plan.PriceYearly)
		if err != nil {
			return nil, fmt.Errorf("create yearly price for plan %s: %w", plan.Slug, err)
		}
		plan.StripePriceYearlyID = &price.ID
		if err := s.store.SavePlan(plan); err != nil {
			return nil, fmt.Errorf("save plan %s: %w", plan.Slug, err)
		}
	}

	return plan, nil
}

// SyncReport is the outcome of a full catalog sync.
type SyncReport struct {
	Synced  []string      `json:"synced"`
	Skipped []string      `json:"skipped"`
	Failed  []SyncFailure `json:"failed"`
}

type SyncFailure struct {
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

// SyncAllPlans walks every active plan. Fully synced plans are skipped, a
// failing plan is recorded and the walk continues; a per-plan error is never
// promoted to a run error.
func (s *CatalogSyncer) SyncAllPlans() (SyncReport, error) {
	report := SyncReport{
		Synced:  []string{},
		Skipped: []string{},
		Failed:  []SyncFailure{},
	}

	list, err := s.store.ActivePlans()
	if err != nil {
		return report, fmt.Errorf("load plans: %w", err)
	}

	for i := range list {
		plan := &list[i]

		if plan.Purchasable() {
			report.Skipped = append(report.Skipped, plan.Slug)
			continue
		}

		if _, err := s.SyncPlan(plan.ID); err != nil {
			log.Printf("❌ catalog: sync plan %s failed: %v", plan.Slug, err)
			report.Failed = append(report.Failed, SyncFailure{Slug: plan.Slug, Error: err.Error()})
			continue
		}
		report.Synced = append(report.Synced, plan.Slug)
	}

	return report, nil
}
