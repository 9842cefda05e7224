package middleware

import (
	"net/http"

	"brightsite/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by GuestResolutionMiddleware.
const (
	CtxGuestIdentity = "guestIdentity"
)

// GuestResolutionMiddleware resolves the signed guest cookie on chat routes.
// A missing cookie is fine (a fresh guest), but a present-and-invalid cookie
// is rejected outright and cleared; an attacker must not be able to swap in a
// forged identity and keep going.
func GuestResolutionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(utils.GuestTokenCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		guest, err := utils.ParseGuestToken(cookie)
		if err != nil {
			c.SetCookie(utils.GuestTokenCookie, "", -1, "/", "", false, true)
			utils.JSONError(c, http.StatusUnauthorized, "Invalid guest token", "guest cookie failed validation")
			c.Abort()
			return
		}

		c.Set(CtxGuestIdentity, guest)
		c.Next()
	}
}
