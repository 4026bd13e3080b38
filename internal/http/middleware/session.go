package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCfg configures the token cookie. The console never inspects the
// token; it is an opaque credential minted by the backend and replayed as a
// bearer header on every authenticated call.
type SessionCfg struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

const CtxKeyToken = "auth_token"

// TokenMiddleware copies the token cookie into the request context.
func TokenMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(cfg.CookieName); err == nil && v != "" {
			c.Set(CtxKeyToken, v)
		}
		c.Next()
	}
}

// Token returns the operator's bearer token, if a session exists.
func Token(c *gin.Context) (string, bool) {
	if v, ok := c.Get(CtxKeyToken); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func SetTokenCookie(c *gin.Context, cfg SessionCfg, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

// ClearTokenCookie ends the session. Called on logout and on any backend 401.
func ClearTokenCookie(c *gin.Context, cfg SessionCfg) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}
