package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "sid"

// SessionMiddleware guarantees every request carries a browsing session
// id, issuing a cookie when the client has none.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(sessionCookie)
		if err != nil || ck.Value == "" {
			sid := uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set("sessionID", sid)
			return next(c)
		}
		c.Set("sessionID", ck.Value)
		return next(c)
	}
}

// SessionID reads the browsing session id set by SessionMiddleware.
func SessionID(c echo.Context) string {
	sid, _ := c.Get("sessionID").(string)
	return sid
}
