package transport

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uint           `json:"category_id"`
	Featured    bool            `json:"featured"`
	IsAvailable bool            `json:"is_available"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"category_id"`
	Featured    *bool            `json:"featured"`
	IsAvailable *bool            `json:"is_available"`
}

type DiscountRequest struct {
	DiscountType string          `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	MinQuantity  int             `json:"min_quantity"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"is_active"`
}

type PromoCodeRequest struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	Value          decimal.Decimal `json:"value"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	UsageLimit     *int            `json:"usage_limit"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"is_active"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
	Override  bool `json:"override"`
}

type ApplyPromoRequest struct {
	PromoCode string `json:"promo_code"`
}

type ReviewRequest struct {
	Rating        int    `json:"rating"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Advantages    string `json:"advantages"`
	Disadvantages string `json:"disadvantages"`
}
