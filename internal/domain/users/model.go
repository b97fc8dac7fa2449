package users

import (
	"time"
)

// User is the identity record billing hangs off of. Authentication itself is
// owned by an upstream service; this app only consumes the signed claims and
// keeps the provider customer mapping.
type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`
	Role     string  `gorm:"type:varchar(20);not null;default:'member'"`

	// Set lazily the first time the user reaches checkout or the portal.
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
