package billing

// EventKind classifies the provider event types this app reconciles. Dispatch
// sites switch over all kinds with KindUnrecognized as an explicit no-op arm,
// never a silent default.
type EventKind int

const (
	KindUnrecognized EventKind = iota
	KindCheckoutCompleted
	KindSubscriptionUpdated
	KindSubscriptionDeleted
	KindInvoiceCreated
	KindInvoicePaymentSucceeded
	KindInvoicePaymentFailed
)

// Wire event type strings as the provider sends them.
const (
	eventCheckoutCompleted       = "checkout.session.completed"
	eventSubscriptionUpdated     = "customer.subscription.updated"
	eventSubscriptionDeleted     = "customer.subscription.deleted"
	eventInvoiceCreated          = "invoice.created"
	eventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	eventInvoicePaymentFailed    = "invoice.payment_failed"
)

// KindOf maps a wire event type onto its kind. Unknown types map to
// KindUnrecognized, which the reconciler acknowledges without acting.
func KindOf(eventType string) EventKind {
	switch eventType {
	case eventCheckoutCompleted:
		return KindCheckoutCompleted
	case eventSubscriptionUpdated:
		return KindSubscriptionUpdated
	case eventSubscriptionDeleted:
		return KindSubscriptionDeleted
	case eventInvoiceCreated:
		return KindInvoiceCreated
	case eventInvoicePaymentSucceeded:
		return KindInvoicePaymentSucceeded
	case eventInvoicePaymentFailed:
		return KindInvoicePaymentFailed
	default:
		return KindUnrecognized
	}
}

func (k EventKind) String() string {
	switch k {
	case KindCheckoutCompleted:
		return "checkout_completed"
	case KindSubscriptionUpdated:
		return "subscription_updated"
	case KindSubscriptionDeleted:
		return "subscription_deleted"
	case KindInvoiceCreated:
		return "invoice_created"
	case KindInvoicePaymentSucceeded:
		return "invoice_payment_succeeded"
	case KindInvoicePaymentFailed:
		return "invoice_payment_failed"
	default:
		return "unrecognized"
	}
}
