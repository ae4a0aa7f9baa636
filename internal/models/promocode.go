package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PromoTypePercentage   = "percentage"
	PromoTypeFixed        = "fixed"
	PromoTypeFreeShipping = "free_shipping"
)

// PromoCode is an order-scoped, usage-limited discount code.
type PromoCode struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Code           string          `gorm:"unique;not null"             json:"code"`
	DiscountType   string          `gorm:"not null"                    json:"discount_type"`
	Value          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"value"`
	StartDate      time.Time       `gorm:"not null"                    json:"start_date"`
	EndDate        time.Time       `gorm:"not null"                    json:"end_date"`
	UsageLimit     *int            `json:"usage_limit"`
	UsedCount      int             `gorm:"default:0"                   json:"used_count"`
	MinOrderAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"min_order_amount"`
	IsActive       bool            `gorm:"default:true"                json:"is_active"`
	Description    string          `json:"description"`
	CreatedByID    *uint           `json:"created_by_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PromoCodeUsage is an immutable audit record of one redemption.
type PromoCodeUsage struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	PromoCodeID    uint            `gorm:"index;not null"              json:"promo_code_id"`
	UserID         uint            `gorm:"index;not null"              json:"user_id"`
	OrderAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"order_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_amount"`
	UsedAt         time.Time       `gorm:"autoCreateTime"              json:"used_at"`
}

// NormalizePromoCode uppercases the code and strips all spaces.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}

func (p *PromoCode) CanBeUsed() bool {
	return p.UsageLimit == nil || p.UsedCount < *p.UsageLimit
}

func (p *PromoCode) Valid(now time.Time) bool {
	return p.IsActive &&
		!now.Before(p.StartDate) && !now.After(p.EndDate) &&
		p.CanBeUsed()
}

// ApplyDiscount returns the discount for the given order amount,
// rounded half-up to 2 decimal places. Zero when the code is invalid or
// the amount is below the minimum. free_shipping always yields zero:
// shipping is charged elsewhere, but the code still counts as applied.
func (p *PromoCode) ApplyDiscount(orderAmount decimal.Decimal, now time.Time) decimal.Decimal {
	if !p.Valid(now) || orderAmount.LessThan(p.MinOrderAmount) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch p.DiscountType {
	case PromoTypePercentage:
		amount = orderAmount.Mul(p.Value).Div(decimal.NewFromInt(100))
	case PromoTypeFixed:
		amount = p.Value
		if amount.GreaterThan(orderAmount) {
			amount = orderAmount
		}
	default:
		return decimal.Zero
	}

	return amount.Round(2)
}
