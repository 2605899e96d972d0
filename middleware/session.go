package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitfunnel/site/utils"
	"recruitfunnel/site/visitor"
)

const sessionMaxAge = 30 * 24 * 60 * 60

// SessionCookie issues the fs_sid visitor session cookie when the browser has none.
// The current request is left untouched, so a first visit reports no session id.
func SessionCookie(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(visitor.SessionCookie); err != nil || v == "" {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitor.SessionCookie, utils.GenerateSessionID(), sessionMaxAge, "/", "", secure, true)
		}
		c.Next()
	}
}
