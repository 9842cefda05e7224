package middleware

import (
	"net/http"
	"strings"

	"brightsite/utils"

	"github.com/gin-gonic/gin"
)

// AdminTokenCookie is the cookie carrying the admin session JWT.
const AdminTokenCookie = "admin_token"

// adminTokenFrom extracts the admin JWT from the session cookie, falling back
// to an Authorization bearer header for API clients.
func adminTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(AdminTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// JWTAuthAdminMiddleware guards admin routes. The token must be a valid admin
// JWT whose hash is still present in the auth cache, so revoking a session is
// a single cache delete.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := adminTokenFrom(c)
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Missing admin credentials", "no admin cookie or bearer token")
			c.Abort()
			return
		}

		adminID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || adminID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "token failed validation")
			c.Abort()
			return
		}

		authCache := utils.GetAuthCacheClient()
		stored, err := authCache.Get(c.Request.Context(), "admin_session:"+adminID).Result()
		if err != nil || stored != utils.HashToken(tokenString) {
			utils.JSONError(c, http.StatusUnauthorized, "Session expired or revoked", "admin session hash mismatch")
			c.Abort()
			return
		}

		c.Set("adminID", adminID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
