package routes

import (
	adminapi "billing-app/internal/api/admin"
	"billing-app/internal/api/billing"
	"billing-app/internal/api/plans"
	stripewebhooks "billing-app/internal/api/stripewebhook"
	"billing-app/internal/api/users"
	"billing-app/internal/app/http/middleware"
	"billing-app/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps carries every constructed handler into route registration. Handlers
// receive their collaborators in main; nothing here reaches for globals.
type Deps struct {
	Store   *store.Store
	Plans   *plans.Handler
	Billing *billing.Handler
	Users   *users.Handler
	Admin   *adminapi.Handler
	Webhook *stripewebhooks.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// The webhook endpoint stays outside every middleware group: it needs the
	// raw body for signature verification and authenticates via the
	// signature, not a session.
	r.POST("/webhook", d.Webhook.Receive)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public pricing feed
	r.GET("/plans", d.Plans.ListPlans)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.GET("/me", d.Users.Me)
	auth.GET("/subscription", d.Billing.GetSubscription)
	auth.GET("/invoices", d.Billing.GetInvoices)

	auth.POST("/create-checkout-session", d.Billing.CreateCheckoutSession)
	auth.POST("/billing-portal", d.Billing.CreateBillingPortal)
	auth.POST("/cancel-subscription", d.Billing.CancelSubscription)
	auth.POST("/reactivate-subscription", d.Billing.ReactivateSubscription)

	auth.GET("/payment-methods", d.Billing.ListPaymentMethods)
	auth.POST("/payment-methods/default", d.Billing.SetDefaultPaymentMethod)
	auth.DELETE("/payment-methods/:id", d.Billing.DetachPaymentMethod)

	// Subscribed users: plan changes need a subscription to change
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription(d.Store))
	subscribed.POST("/change-plan", d.Billing.ChangePlan)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"), middleware.SanitizeAndCleanInputMiddleware())

	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.GET("/users", d.Admin.ListUsers)
	admin.GET("/user/:id", d.Admin.GetUserDetails)
	admin.GET("/invoices", d.Admin.ListInvoices)

	admin.GET("/plans", d.Plans.ListAllPlans)
	admin.POST("/plans", d.Plans.CreatePlan)
	admin.PUT("/plans/:id", d.Plans.UpdatePlan)
	admin.DELETE("/plans/:id", d.Plans.DeactivatePlan)
	admin.POST("/plans/:id/sync", d.Plans.SyncPlan)
	admin.POST("/sync-plans", d.Plans.SyncAllPlans)

	admin.GET("/webhook-events", d.Admin.ListWebhookEvents)
	admin.GET("/settings", d.Admin.GetSettings)
	admin.PUT("/settings/:key", d.Admin.PutSetting)
}
