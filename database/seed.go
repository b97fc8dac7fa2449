package database

import (
	"errors"
	"log"

	"billing-app/config"
	"billing-app/internal/domain/plans"
	"billing-app/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed fills an empty database with the starter catalog and, when configured,
// an admin account. Safe to call on every boot.
func Seed(db *gorm.DB) {
	seedPlans(db)
	seedAdmin(db)
}

// seedPlans inserts the default plan trio on first boot. The guard is "any
// plans exist", not per-slug: a partially edited catalog is an operator
// choice and must not be topped back up.
func seedPlans(db *gorm.DB) {
	var count int64
	if err := db.Model(&plans.Plan{}).Count(&count).Error; err != nil {
		log.Printf("❌ seed: count plans: %v", err)
		return
	}
	if count > 0 {
		return
	}

	trio := []plans.Plan{
		{
			Slug:         "starter",
			Name:         "Starter",
			Description:  "For individuals getting started",
			PriceMonthly: 1900,
			PriceYearly:  18200,
			Features:     plans.FeatureList{"1 project", "Community support"},
			MaxSeats:     intPtr(1),
			IsActive:     true,
			SortOrder:    1,
		},
		{
			Slug:         "professional",
			Name:         "Professional",
			Description:  "For growing teams",
			PriceMonthly: 4900,
			PriceYearly:  47000,
			Features:     plans.FeatureList{"Unlimited projects", "Priority support", "Team seats"},
			MaxSeats:     intPtr(10),
			IsActive:     true,
			IsPopular:    true,
			SortOrder:    2,
		},
		{
			Slug:         "enterprise",
			Name:         "Enterprise",
			Description:  "For large organizations",
			PriceMonthly: 9900,
			PriceYearly:  95000,
			Features:     plans.FeatureList{"Unlimited projects", "Dedicated support", "Unlimited seats", "SSO"},
			IsActive:     true,
			SortOrder:    3,
		},
	}

	if err := db.Create(&trio).Error; err != nil {
		log.Printf("❌ seed: create plans: %v", err)
		return
	}
	log.Printf("✅ seed: created %d default plans", len(trio))
}

// seedAdmin creates the configured admin account once. Login itself is owned
// by the identity service; the hash only exists so that service can verify
// the seeded credential.
func seedAdmin(db *gorm.DB) {
	if config.SEED_ADMIN_EMAIL == "" || config.SEED_ADMIN_PASSWORD == "" {
		return
	}

	var existing users.User
	err := db.Where("email = ?", config.SEED_ADMIN_EMAIL).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ seed: look up admin: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.SEED_ADMIN_PASSWORD), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ seed: hash admin password: %v", err)
		return
	}

	password := string(hashed)
	admin := users.User{
		Name:     "Admin",
		Email:    config.SEED_ADMIN_EMAIL,
		Password: &password,
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("❌ seed: create admin: %v", err)
		return
	}
	log.Printf("✅ seed: created admin account %s", config.SEED_ADMIN_EMAIL)
}

func intPtr(n int) *int {
	return &n
}
