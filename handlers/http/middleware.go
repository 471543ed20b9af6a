package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"draw2photo-server/services"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

const contextUserIDKey = "auth.userID"

// Identity resolves the current user once per request from the token
// cookie. No cookie means anonymous and the request proceeds; a present
// but invalid or expired token is rejected with 401, which is a different
// condition than anonymous.
func Identity(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		userID, err := tokens.Resolve(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(services.TokenTTL.Seconds()), "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
