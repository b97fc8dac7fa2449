package plans

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Billing interval constants (single source of truth)
const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

func ValidInterval(interval string) bool {
	return interval == IntervalMonthly || interval == IntervalYearly
}

// FeatureList is the ordered marketing bullet list of a plan, persisted as a
// JSON array in a text column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if len(f) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("cannot scan feature list from %T", value)
	}
}

type Plan struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"not null;uniqueIndex:idx_plans_slug"`
	Name        string `gorm:"not null"`
	Description string

	// Prices are minor units (cents), one amount per billing interval.
	PriceMonthly int64 `gorm:"column:price_monthly;not null;default:0"`
	PriceYearly  int64 `gorm:"column:price_yearly;not null;default:0"`

	Features FeatureList `gorm:"type:text"`
	MaxSeats *int        `gorm:"column:max_seats"`

	IsActive  bool `gorm:"not null;default:true"`
	IsPopular bool `gorm:"not null;default:false"`
	SortOrder int  `gorm:"not null;default:0"`

	StripeProductID      *string `gorm:"column:stripe_product_id;uniqueIndex:idx_plans_stripe_product_id"`
	StripePriceMonthlyID *string `gorm:"column:stripe_price_monthly_id;uniqueIndex:idx_plans_stripe_price_monthly_id"`
	StripePriceYearlyID  *string `gorm:"column:stripe_price_yearly_id;uniqueIndex:idx_plans_stripe_price_yearly_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Purchasable reports whether checkout can be offered for this plan: both
// recurring prices must already exist on the provider side.
func (p *Plan) Purchasable() bool {
	return p.StripePriceMonthlyID != nil && *p.StripePriceMonthlyID != "" &&
		p.StripePriceYearlyID != nil && *p.StripePriceYearlyID != ""
}

// PriceFor returns the minor-unit amount for the given billing interval.
func (p *Plan) PriceFor(interval string) int64 {
	if interval == IntervalYearly {
		return p.PriceYearly
	}
	return p.PriceMonthly
}

// PriceIDFor returns the provider price id for the interval, or "" when that
// price has not been created yet.
func (p *Plan) PriceIDFor(interval string) string {
	var id *string
	if interval == IntervalYearly {
		id = p.StripePriceYearlyID
	} else {
		id = p.StripePriceMonthlyID
	}
	if id == nil {
		return ""
	}
	return *id
}

// MatchPriceID reports which billing interval the given provider price id
// belongs to, or "" if it is not one of this plan's prices.
func (p *Plan) MatchPriceID(priceID string) string {
	if priceID == "" {
		return ""
	}
	if p.StripePriceMonthlyID != nil && *p.StripePriceMonthlyID == priceID {
		return IntervalMonthly
	}
	if p.StripePriceYearlyID != nil && *p.StripePriceYearlyID == priceID {
		return IntervalYearly
	}
	return ""
}
