package billing

import (
	"encoding/json"
	"testing"

	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/domain/users"
	"billing-app/internal/payments"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

// fakeStore implements the store interfaces with function fields so each test
// overrides only what it touches. Unset lookups report "not found".
type fakeStore struct {
	planByID       func(id uint) (*plans.Plan, error)
	planByPriceID  func(priceID string) (*plans.Plan, string, error)
	activePlans    func() ([]plans.Plan, error)
	savePlan       func(plan *plans.Plan) error
	userByID       func(id uint) (*users.User, error)
	userByCustomer func(customerID string) (*users.User, error)
	setCustomerID  func(userID uint, customerID string) error
	subByStripeID  func(subscriptionID string) (*subscriptions.Subscription, error)
	upsertSub      func(sub *subscriptions.Subscription) error
	saveSub        func(sub *subscriptions.Subscription) error
	invByStripeID  func(invoiceID string) (*subscriptions.Invoice, error)
	createInvoice  func(inv *subscriptions.Invoice) (bool, error)
	saveInvoice    func(inv *subscriptions.Invoice) error

	savedPlans    []*plans.Plan
	upsertedSubs  []*subscriptions.Subscription
	savedSubs     []*subscriptions.Subscription
	savedInvoices []*subscriptions.Invoice
}

func (f *fakeStore) PlanByID(id uint) (*plans.Plan, error) {
	if f.planByID == nil {
		return nil, nil
	}
	return f.planByID(id)
}

func (f *fakeStore) PlanByPriceID(priceID string) (*plans.Plan, string, error) {
	if f.planByPriceID == nil {
		return nil, "", nil
	}
	return f.planByPriceID(priceID)
}

func (f *fakeStore) ActivePlans() ([]plans.Plan, error) {
	if f.activePlans == nil {
		return nil, nil
	}
	return f.activePlans()
}

func (f *fakeStore) SavePlan(plan *plans.Plan) error {
	f.savedPlans = append(f.savedPlans, plan)
	if f.savePlan == nil {
		return nil
	}
	return f.savePlan(plan)
}

func (f *fakeStore) UserByID(id uint) (*users.User, error) {
	if f.userByID == nil {
		return nil, nil
	}
	return f.userByID(id)
}

func (f *fakeStore) UserByStripeCustomerID(customerID string) (*users.User, error) {
	if f.userByCustomer == nil {
		return nil, nil
	}
	return f.userByCustomer(customerID)
}

func (f *fakeStore) SetStripeCustomerID(userID uint, customerID string) error {
	if f.setCustomerID == nil {
		return nil
	}
	return f.setCustomerID(userID, customerID)
}

func (f *fakeStore) SubscriptionByStripeID(subscriptionID string) (*subscriptions.Subscription, error) {
	if f.subByStripeID == nil {
		return nil, nil
	}
	return f.subByStripeID(subscriptionID)
}

func (f *fakeStore) UpsertSubscription(sub *subscriptions.Subscription) error {
	f.upsertedSubs = append(f.upsertedSubs, sub)
	if f.upsertSub == nil {
		return nil
	}
	return f.upsertSub(sub)
}

func (f *fakeStore) SaveSubscription(sub *subscriptions.Subscription) error {
	f.savedSubs = append(f.savedSubs, sub)
	if f.saveSub == nil {
		return nil
	}
	return f.saveSub(sub)
}

func (f *fakeStore) InvoiceByStripeID(invoiceID string) (*subscriptions.Invoice, error) {
	if f.invByStripeID == nil {
		return nil, nil
	}
	return f.invByStripeID(invoiceID)
}

func (f *fakeStore) CreateInvoiceIfAbsent(inv *subscriptions.Invoice) (bool, error) {
	if f.createInvoice == nil {
		return true, nil
	}
	return f.createInvoice(inv)
}

func (f *fakeStore) SaveInvoice(inv *subscriptions.Invoice) error {
	f.savedInvoices = append(f.savedInvoices, inv)
	if f.saveInvoice == nil {
		return nil
	}
	return f.saveInvoice(inv)
}

// fakeProvider covers every provider method the services consume.
type fakeProvider struct {
	findProduct   func(planID uint) (*stripe.Product, error)
	createProduct func(planID uint, name, description string, active bool) (*stripe.Product, error)
	updateProduct func(productID, name, description string, active bool) (*stripe.Product, error)
	createPrice   func(productID, interval, currency string, amount int64) (*stripe.Price, error)

	createCustomer func(userID uint, email, name string) (*stripe.Customer, error)
	getCustomer    func(customerID string) (*stripe.Customer, error)

	listActive    func(customerID string) ([]*stripe.Subscription, error)
	getSub        func(subscriptionID string) (*stripe.Subscription, error)
	changePrice   func(subscriptionID, itemID, priceID string, metadata map[string]string) (*stripe.Subscription, error)
	setCancelFlag func(subscriptionID string, cancel bool) (*stripe.Subscription, error)
	cancelNow     func(subscriptionID string) (*stripe.Subscription, error)

	createSession func(p payments.CheckoutParams) (*stripe.CheckoutSession, error)

	canceledIDs []string
	priceCalls  []string
}

func (f *fakeProvider) FindProductByPlanID(planID uint) (*stripe.Product, error) {
	if f.findProduct == nil {
		return nil, nil
	}
	return f.findProduct(planID)
}

func (f *fakeProvider) CreateProduct(planID uint, name, description string, active bool) (*stripe.Product, error) {
	if f.createProduct == nil {
		return &stripe.Product{ID: "prod_fake", Name: name}, nil
	}
	return f.createProduct(planID, name, description, active)
}

func (f *fakeProvider) UpdateProduct(productID, name, description string, active bool) (*stripe.Product, error) {
	if f.updateProduct == nil {
		return &stripe.Product{ID: productID, Name: name}, nil
	}
	return f.updateProduct(productID, name, description, active)
}

func (f *fakeProvider) CreateRecurringPrice(productID, interval, currency string, amount int64) (*stripe.Price, error) {
	f.priceCalls = append(f.priceCalls, interval)
	if f.createPrice == nil {
		return &stripe.Price{ID: "price_" + interval}, nil
	}
	return f.createPrice(productID, interval, currency, amount)
}

func (f *fakeProvider) CreateCustomer(userID uint, email, name string) (*stripe.Customer, error) {
	if f.createCustomer == nil {
		return &stripe.Customer{ID: "cus_fake", Email: email}, nil
	}
	return f.createCustomer(userID, email, name)
}

func (f *fakeProvider) GetCustomer(customerID string) (*stripe.Customer, error) {
	if f.getCustomer == nil {
		return &stripe.Customer{ID: customerID}, nil
	}
	return f.getCustomer(customerID)
}

func (f *fakeProvider) ListActiveSubscriptions(customerID string) ([]*stripe.Subscription, error) {
	if f.listActive == nil {
		return nil, nil
	}
	return f.listActive(customerID)
}

func (f *fakeProvider) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	if f.getSub == nil {
		return &stripe.Subscription{ID: subscriptionID}, nil
	}
	return f.getSub(subscriptionID)
}

func (f *fakeProvider) ChangeSubscriptionPrice(subscriptionID, itemID, priceID string, metadata map[string]string) (*stripe.Subscription, error) {
	if f.changePrice == nil {
		return &stripe.Subscription{ID: subscriptionID}, nil
	}
	return f.changePrice(subscriptionID, itemID, priceID, metadata)
}

func (f *fakeProvider) SetCancelAtPeriodEnd(subscriptionID string, cancel bool) (*stripe.Subscription, error) {
	if f.setCancelFlag == nil {
		return &stripe.Subscription{ID: subscriptionID, CancelAtPeriodEnd: cancel}, nil
	}
	return f.setCancelFlag(subscriptionID, cancel)
}

func (f *fakeProvider) CancelNow(subscriptionID string) (*stripe.Subscription, error) {
	f.canceledIDs = append(f.canceledIDs, subscriptionID)
	if f.cancelNow == nil {
		return &stripe.Subscription{ID: subscriptionID, Status: stripe.SubscriptionStatusCanceled}, nil
	}
	return f.cancelNow(subscriptionID)
}

func (f *fakeProvider) CreateCheckoutSession(p payments.CheckoutParams) (*stripe.CheckoutSession, error) {
	if f.createSession == nil {
		return &stripe.CheckoutSession{ID: "cs_fake", URL: "https://checkout.example/cs_fake"}, nil
	}
	return f.createSession(p)
}

// event builds a verified-looking provider event from raw payload fields.
func event(t *testing.T, eventType string, payload map[string]interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return stripe.Event{
		ID:   "evt_test",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func strPtr(s string) *string { return &s }
