package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/okravets/storefront/internal/models"
)

// TokenService validates HS256 access tokens issued by the external
// auth system and puts the caller's identity into the echo context.
type TokenService struct {
	JWTSecret []byte
}

func (t *TokenService) claimsFromRequest(c echo.Context) (jwt.MapClaims, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	token, err := jwt.Parse(cookie.Value, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unexpected signing method")
		}
		return t.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) error {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	c.Set("userID", uint(sub))
	c.Set("role", role)
	return nil
}

func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.claimsFromRequest(c)
		if err != nil {
			return err
		}
		if err := setUserContext(c, claims); err != nil {
			return err
		}
		return next(c)
	}
}

func (t *TokenService) StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.claimsFromRequest(c)
		if err != nil {
			return err
		}
		if err := setUserContext(c, claims); err != nil {
			return err
		}
		if c.Get("role") != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}

// UserID reads the authenticated user id set by the middleware.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
