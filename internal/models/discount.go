package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Discount is a product-scoped, time-bounded price reduction.
type Discount struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	ProductID    uint            `gorm:"index;not null"              json:"product_id"`
	DiscountType string          `gorm:"not null"                    json:"discount_type"`
	Value        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"value"`
	StartDate    time.Time       `gorm:"not null"                    json:"start_date"`
	EndDate      time.Time       `gorm:"not null"                    json:"end_date"`
	IsActive     bool            `gorm:"default:true"                json:"is_active"`
	MinQuantity  int             `gorm:"default:1"                   json:"min_quantity"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (d *Discount) Valid(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// CalculateDiscount returns the discount amount for a line of the given
// unit price and quantity, rounded half-up to 2 decimal places. Invalid
// discounts and lines below the quantity threshold yield zero.
func (d *Discount) CalculateDiscount(price decimal.Decimal, quantity int, now time.Time) decimal.Decimal {
	if !d.Valid(now) || quantity < d.MinQuantity {
		return decimal.Zero
	}

	total := price.Mul(decimal.NewFromInt(int64(quantity)))

	var amount decimal.Decimal
	switch d.DiscountType {
	case DiscountTypePercentage:
		amount = total.Mul(d.Value).Div(decimal.NewFromInt(100))
	case DiscountTypeFixed:
		amount = d.Value
		if amount.GreaterThan(total) {
			amount = total
		}
	default:
		return decimal.Zero
	}

	return amount.Round(2)
}

// DiscountedPrice is the line total after the discount, never negative.
func (d *Discount) DiscountedPrice(price decimal.Decimal, quantity int, now time.Time) decimal.Decimal {
	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	result := total.Sub(d.CalculateDiscount(price, quantity, now))
	if result.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return result.Round(2)
}

// BestDiscount picks the valid discount yielding the lowest net price
// for quantity 1. Lowest resulting price wins, not largest nominal
// value: a 10% discount beats a flat 5.00 at price 100.00.
func BestDiscount(discounts []Discount, price decimal.Decimal, now time.Time) *Discount {
	var best *Discount
	var bestPrice decimal.Decimal

	for i := range discounts {
		d := &discounts[i]
		if !d.Valid(now) {
			continue
		}
		p := d.DiscountedPrice(price, 1, now)
		if best == nil || p.LessThan(bestPrice) {
			best = d
			bestPrice = p
		}
	}
	return best
}
