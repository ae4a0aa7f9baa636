package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/middleware/auth"
)

type Deps struct {
	ProductHandler  *ProductHTTP
	DiscountHandler *DiscountHTTP
	PromoHandler    *PromoHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	ReviewHandler   *ReviewHTTP
	SearchHandler   *SearchHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	tokens := &auth.TokenService{JWTSecret: d.JWTSecret}

	e.Use(SessionMiddleware)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.SearchProducts)
	}
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, tokens.StaffOnly)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, tokens.StaffOnly)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, tokens.StaffOnly)

	products.GET("/:id/discounts", d.DiscountHandler.ProductDiscounts)
	products.POST("/:id/discounts", d.DiscountHandler.CreateDiscount, tokens.StaffOnly)
	e.PATCH("/discounts/:id", d.DiscountHandler.UpdateDiscount, tokens.StaffOnly)
	e.DELETE("/discounts/:id", d.DiscountHandler.DeleteDiscount, tokens.StaffOnly)

	promos := e.Group("/promocodes", tokens.StaffOnly)
	promos.POST("", d.PromoHandler.CreatePromoCode)
	promos.GET("", d.PromoHandler.ListPromoCodes)
	promos.GET("/:id/stats", d.PromoHandler.PromoCodeStats)

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/items/:id", d.CartHandler.RemoveFromCart)
	cart.POST("/promo", d.PromoHandler.ApplyPromoCode, tokens.RequireLogin)
	cart.DELETE("/promo", d.PromoHandler.RemovePromoCode)

	e.POST("/checkout/:product_id", d.CheckoutHandler.BuyNow, tokens.RequireLogin)
	e.GET("/orders", d.CheckoutHandler.ListOrders, tokens.RequireLogin)
	e.GET("/orders/:id", d.CheckoutHandler.GetOrder, tokens.RequireLogin)

	products.GET("/:id/reviews", d.ReviewHandler.ListProductReviews)
	products.POST("/:id/reviews", d.ReviewHandler.CreateReview, tokens.RequireLogin)
	e.PATCH("/reviews/:id", d.ReviewHandler.UpdateReview, tokens.RequireLogin)
	e.DELETE("/reviews/:id", d.ReviewHandler.DeleteReview, tokens.RequireLogin)
	e.POST("/reviews/:id/helpful", d.ReviewHandler.MarkHelpful)
}
