package billing

import "testing"

func TestKindOf(t *testing.T) {
	cases := []struct {
		eventType string
		want      EventKind
	}{
		{"checkout.session.completed", KindCheckoutCompleted},
		{"customer.subscription.updated", KindSubscriptionUpdated},
		{"customer.subscription.deleted", KindSubscriptionDeleted},
		{"invoice.created", KindInvoiceCreated},
		{"invoice.payment_succeeded", KindInvoicePaymentSucceeded},
		{"invoice.payment_failed", KindInvoicePaymentFailed},
		{"customer.subscription.created", KindUnrecognized},
		{"invoice.finalized", KindUnrecognized},
		{"payment_intent.succeeded", KindUnrecognized},
		{"", KindUnrecognized},
	}

	for _, tc := range cases {
		if got := KindOf(tc.eventType); got != tc.want {
			t.Errorf("KindOf(%q) = %v, want %v", tc.eventType, got, tc.want)
		}
	}
}

func TestEventKindString(t *testing.T) {
	cases := map[EventKind]string{
		KindCheckoutCompleted:       "checkout_completed",
		KindSubscriptionUpdated:     "subscription_updated",
		KindSubscriptionDeleted:     "subscription_deleted",
		KindInvoiceCreated:          "invoice_created",
		KindInvoicePaymentSucceeded: "invoice_payment_succeeded",
		KindInvoicePaymentFailed:    "invoice_payment_failed",
		KindUnrecognized:            "unrecognized",
		EventKind(99):               "unrecognized",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
