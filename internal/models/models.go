package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Role     string `gorm:"not null;default:user"    json:"role"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"index;not null"           json:"name"`
	Slug        string `gorm:"unique;not null"          json:"slug"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true"             json:"is_active"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CategoryID  *uint           `gorm:"index"                       json:"category_id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Slug        string          `gorm:"unique;not null"             json:"slug"`
	Description string          `gorm:"not null"                    json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Views       int64           `gorm:"default:0"                   json:"views"`
	Featured    bool            `gorm:"default:false"               json:"featured"`
	IsAvailable bool            `gorm:"default:true"                json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

const (
	OrderStatusNew  = "new"
	OrderStatusPaid = "paid"
)

type Order struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID         uint            `gorm:"index;not null"              json:"user_id"`
	ProductID      uint            `gorm:"not null"                    json:"product_id"`
	Quantity       int             `gorm:"default:1;check:quantity>0"  json:"quantity"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_amount"`
	FinalPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"final_price"`
	PromoCode      string          `json:"promo_code"`
	Status         string          `gorm:"not null"                    json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Review struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"                json:"id"`
	ProductID     uint      `gorm:"uniqueIndex:idx_product_author;not null" json:"product_id"`
	AuthorID      uint      `gorm:"uniqueIndex:idx_product_author;not null" json:"author_id"`
	Rating        int       `gorm:"not null;check:rating BETWEEN 1 AND 5"   json:"rating"`
	Title         string    `gorm:"not null"                                json:"title"`
	Content       string    `gorm:"not null"                                json:"content"`
	Advantages    string    `json:"advantages"`
	Disadvantages string    `json:"disadvantages"`
	IsActive      bool      `gorm:"default:true"                            json:"is_active"`
	HelpfulCount  int64     `gorm:"default:0"                               json:"helpful_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionEntry is one string value stored under a browsing session.
type SessionEntry struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"             json:"id"`
	SessionID string `gorm:"uniqueIndex:idx_session_key;not null" json:"session_id"`
	Key       string `gorm:"uniqueIndex:idx_session_key;not null" json:"key"`
	Value     string `gorm:"not null"                             json:"value"`
}

func (SessionEntry) TableName() string {
	return "session_entries"
}
