package stripewebhooks

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billing-app/internal/domain/subscriptions"
	"billing-app/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const testSecret = "whsec_test_secret"

type fakeEventLog struct {
	create func(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error)

	recorded  []*subscriptions.WebhookEvent
	markedID  uint
	markedErr error
	marked    bool
}

func (f *fakeEventLog) CreateWebhookEventIfAbsent(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error) {
	f.recorded = append(f.recorded, ev)
	if f.create != nil {
		return f.create(ev)
	}
	ev.ID = 1
	return true, ev, nil
}

func (f *fakeEventLog) MarkWebhookEventProcessed(id uint, processingErr error) error {
	f.marked = true
	f.markedID = id
	f.markedErr = processingErr
	return nil
}

type fakeReconciler struct {
	err     error
	handled []stripe.Event
}

func (f *fakeReconciler) Handle(event stripe.Event) error {
	f.handled = append(f.handled, event)
	return f.err
}

func postWebhook(t *testing.T, h *Handler, body string, sign bool) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/webhooks/stripe", h.Receive)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(body))
	if sign {
		now := time.Now()
		sig := webhook.ComputeSignature(now, []byte(body), testSecret)
		req.Header.Set("Stripe-Signature",
			fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReceiveVerifiesRecordsAndAcks(t *testing.T) {
	events := &fakeEventLog{}
	rec := &fakeReconciler{}
	h := NewHandler(payments.New("", testSecret), events, rec)

	body := `{"id":"evt_1","type":"invoice.created","data":{"object":{"id":"in_1"}}}`
	w := postWebhook(t, h, body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)

	require.Len(t, events.recorded, 1)
	assert.Equal(t, "evt_1", events.recorded[0].StripeEventID)
	assert.Equal(t, "invoice.created", events.recorded[0].Type)
	assert.JSONEq(t, body, events.recorded[0].PayloadJSON)

	require.Len(t, rec.handled, 1)
	assert.Equal(t, "evt_1", rec.handled[0].ID)

	assert.True(t, events.marked)
	assert.NoError(t, events.markedErr)
}

func TestReceiveRejectsBadSignature(t *testing.T) {
	events := &fakeEventLog{}
	rec := &fakeReconciler{}
	h := NewHandler(payments.New("", testSecret), events, rec)

	w := postWebhook(t, h, `{"id":"evt_1","type":"invoice.created"}`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, rec.handled)
	assert.Empty(t, events.recorded)
}

func TestReceiveWithoutSecretConfigured(t *testing.T) {
	events := &fakeEventLog{}
	h := NewHandler(payments.New("", ""), events, &fakeReconciler{})

	w := postWebhook(t, h, `{"id":"evt_1","type":"invoice.created"}`, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, events.recorded)
}

func TestReceiveAcksProcessingFailure(t *testing.T) {
	events := &fakeEventLog{}
	procErr := errors.New("plan not found")
	rec := &fakeReconciler{err: procErr}
	h := NewHandler(payments.New("", testSecret), events, rec)

	body := `{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`
	w := postWebhook(t, h, body, true)

	// The delivery is still acknowledged; the failure lives on the event log.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	assert.True(t, events.marked)
	assert.Equal(t, procErr, events.markedErr)
}

func TestReceiveSkipsCleanRedelivery(t *testing.T) {
	processedAt := time.Now()
	events := &fakeEventLog{
		create: func(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error) {
			return false, &subscriptions.WebhookEvent{
				ID:            1,
				StripeEventID: ev.StripeEventID,
				ProcessedAt:   &processedAt,
			}, nil
		},
	}
	rec := &fakeReconciler{}
	h := NewHandler(payments.New("", testSecret), events, rec)

	w := postWebhook(t, h, `{"id":"evt_1","type":"invoice.created","data":{"object":{}}}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duplicate":true`)
	assert.Empty(t, rec.handled)
	assert.False(t, events.marked)
}

func TestReceiveRetriesFailedRedelivery(t *testing.T) {
	processedAt := time.Now()
	events := &fakeEventLog{
		create: func(ev *subscriptions.WebhookEvent) (bool, *subscriptions.WebhookEvent, error) {
			return false, &subscriptions.WebhookEvent{
				ID:              1,
				StripeEventID:   ev.StripeEventID,
				ProcessedAt:     &processedAt,
				ProcessingError: "plan not found",
			}, nil
		},
	}
	rec := &fakeReconciler{}
	h := NewHandler(payments.New("", testSecret), events, rec)

	w := postWebhook(t, h, `{"id":"evt_1","type":"invoice.created","data":{"object":{}}}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, rec.handled, 1)
	assert.True(t, events.marked)
	assert.NoError(t, events.markedErr, "clean retry clears the recorded failure")
}

func TestReceiveUnrecognizedTypeStillRecorded(t *testing.T) {
	events := &fakeEventLog{}
	rec := &fakeReconciler{}
	h := NewHandler(payments.New("", testSecret), events, rec)

	body := `{"id":"evt_9","type":"payment_intent.succeeded","data":{"object":{}}}`
	w := postWebhook(t, h, body, true)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, events.recorded, 1)
	assert.Equal(t, "payment_intent.succeeded", events.recorded[0].Type)
	// Dispatch still runs; the reconciler's unrecognized arm is a no-op.
	require.Len(t, rec.handled, 1)
}
