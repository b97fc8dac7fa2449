package main

import (
	"os"
	"time"

	"billing-app/config"
	"billing-app/database"
	adminapi "billing-app/internal/api/admin"
	billingapi "billing-app/internal/api/billing"
	plansapi "billing-app/internal/api/plans"
	stripewebhooks "billing-app/internal/api/stripewebhook"
	usersapi "billing-app/internal/api/users"
	routes "billing-app/internal/app/http"
	"billing-app/internal/billing"
	"billing-app/internal/payments"
	"billing-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	database.Seed(database.DB)

	st := store.New(database.DB)

	// One provider client for the whole app. Without credentials it stays
	// unconfigured and billing endpoints answer 503 instead of crashing.
	client := payments.New(config.STRIPE_SECRET_KEY, config.STRIPE_WEBHOOK_SECRET)

	syncer := billing.NewCatalogSyncer(st, client, config.CURRENCY)
	checkout := billing.NewCheckoutService(st, client, config.CHECKOUT_SUCCESS_URL, config.CHECKOUT_CANCEL_URL)
	changer := billing.NewPlanChanger(st, client)
	reconciler := billing.NewReconciler(st, client)

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:   st,
		Plans:   plansapi.NewHandler(st, syncer, client),
		Billing: billingapi.NewHandler(st, client, checkout, changer, config.BILLING_PORTAL_URL),
		Users:   usersapi.NewHandler(st),
		Admin:   adminapi.NewHandler(st),
		Webhook: stripewebhooks.NewHandler(client, st, reconciler),
	})

	r.Run(":" + config.PORT)
}
