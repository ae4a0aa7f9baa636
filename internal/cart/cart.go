package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
)

const (
	cartKey  = "cart"
	promoKey = "promo_code"
)

// Store is the session capability the cart needs.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}

// CatalogReader resolves live product data while iterating the cart.
type CatalogReader interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductDiscounts(ctx context.Context, productID uint) ([]models.Discount, error)
}

// entry is what the session holds per product. Prices are fixed-point
// decimals serialized as strings, snapshotted at add time.
type entry struct {
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}

// Line is one cart entry joined with the live product record.
type Line struct {
	Product       *models.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// Cart aggregates one session's selected products. The unit price is
// frozen when the entry is first created (discounted price if a
// discount was active then) and is only refreshed when the entry is
// removed and added again.
type Cart struct {
	Store     Store
	Catalog   CatalogReader
	SessionID string
}

func New(store Store, catalog CatalogReader, sessionID string) *Cart {
	return &Cart{Store: store, Catalog: catalog, SessionID: sessionID}
}

func (c *Cart) load(ctx context.Context) (map[string]entry, error) {
	raw, ok, err := c.Store.Get(ctx, c.SessionID, cartKey)
	if err != nil {
		return nil, err
	}
	items := make(map[string]entry)
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Cart) save(ctx context.Context, items map[string]entry) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Store.Set(ctx, c.SessionID, cartKey, string(raw))
}

// Add puts quantity units of the product into the cart. With override
// the quantity replaces the stored one, otherwise it accumulates. An
// entry whose resulting quantity drops to zero or below is removed.
func (c *Cart) Add(ctx context.Context, productID uint, quantity int, override bool) error {
	product, err := c.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	discounts, err := c.Catalog.GetProductDiscounts(ctx, productID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	unitPrice := product.Price
	if best := models.BestDiscount(discounts, product.Price, now); best != nil {
		unitPrice = best.DiscountedPrice(product.Price, 1, now)
	}

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(productID), 10)
	item, ok := items[key]
	if !ok {
		item = entry{
			Quantity:      0,
			Price:         unitPrice,
			OriginalPrice: product.Price,
		}
	}

	if override {
		item.Quantity = quantity
	} else {
		item.Quantity += quantity
	}

	if item.Quantity <= 0 {
		delete(items, key)
	} else {
		items[key] = item
	}

	return c.save(ctx, items)
}

// Remove drops the product's entry unconditionally. No-op if absent.
func (c *Cart) Remove(ctx context.Context, productID uint) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	key := strconv.FormatUint(uint64(productID), 10)
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return c.save(ctx, items)
}

// Items resolves the live product for every entry and computes line
// totals. Entries whose product no longer exists are skipped.
func (c *Cart) Items(ctx context.Context) ([]Line, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for key, item := range items {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		product, err := c.Catalog.GetProduct(ctx, uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{
			Product:       product,
			Quantity:      item.Quantity,
			UnitPrice:     item.Price,
			OriginalPrice: item.OriginalPrice,
			LineTotal:     item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].Product.ID < lines[j].Product.ID })
	return lines, nil
}

// Total sums unit_price*quantity over all entries.
func (c *Cart) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := c.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// Len is the number of units across all entries.
func (c *Cart) Len(ctx context.Context) (int, error) {
	items, err := c.load(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n, nil
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.Store.Delete(ctx, c.SessionID, cartKey)
}

// PromoCode reads the code attached to this session, empty when none.
func (c *Cart) PromoCode(ctx context.Context) (string, error) {
	code, _, err := c.Store.Get(ctx, c.SessionID, promoKey)
	return code, err
}

func (c *Cart) SetPromoCode(ctx context.Context, code string) error {
	return c.Store.Set(ctx, c.SessionID, promoKey, code)
}

func (c *Cart) ClearPromoCode(ctx context.Context) error {
	return c.Store.Delete(ctx, c.SessionID, promoKey)
}
