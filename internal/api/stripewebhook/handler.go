package stripewebhooks

import (
	"errors"
	"io"
	"log"
	"net/http"

	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// Stripe caps webhook payloads well below this; anything larger is garbage.
const maxBodyBytes = 65536

type EventLog interface {
	CreateWebhookEventIfAbsent(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error)
	MarkWebhookEventProcessed(id uint, processingErr error) error
}

type Verifier interface {
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

type Reconciler interface {
	Handle(event stripe.Event) error
}

type Handler struct {
	verifier   Verifier
	events     EventLog
	reconciler Reconciler
}

func NewHandler(verifier Verifier, events EventLog, reconciler Reconciler) *Handler {
	return &Handler{verifier: verifier, events: events, reconciler: reconciler}
}

// Receive is the webhook endpoint. Once the signature checks out the
// delivery is ALWAYS acknowledged with a 200: processing failures are
// recorded on the event log for the admin surface instead of bounced back,
// because a 5xx only makes the provider redeliver an event that will fail
// the same way again.
func (h *Handler) Receive(c *gin.Context) {
	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	// A missing secret gets the same 400 as a bad signature: nothing about
	// the request can be trusted either way.
	event, err := h.verifier.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			log.Println("❌ webhook received but no webhook secret is configured")
		} else {
			log.Println("❌ Stripe signature verification failed:", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	created, row, logErr := h.events.CreateWebhookEventIfAbsent(&subscriptions.WebhookEvent{
		StripeEventID: event.ID,
		Type:          string(event.Type),
		PayloadJSON:   string(payload),
	})
	if logErr != nil {
		// The receipt log is unavailable; process anyway, the event would
		// otherwise be lost entirely.
		log.Printf("❌ webhook: could not record event %s: %v", event.ID, logErr)
	}

	// A redelivery of an event that already processed cleanly is skipped.
	// Failed ones run again; a retry may succeed after a fix.
	if !created && row != nil && row.ProcessedAt != nil && !row.Failed() {
		c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
		return
	}

	procErr := h.reconciler.Handle(event)
	if procErr != nil {
		log.Printf("❌ webhook: event %s (%s) not applied: %v", event.ID, event.Type, procErr)
	}

	if row != nil {
		if err := h.events.MarkWebhookEventProcessed(row.ID, procErr); err != nil {
			log.Printf("❌ webhook: could not record outcome for event %s: %v", event.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
