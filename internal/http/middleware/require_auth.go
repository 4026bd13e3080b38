package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/http/flash"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// RequireToken guards the admin routes: with no stored token the request is
// redirected to /login before any backend call is made.
func RequireToken(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Token(c); ok {
			c.Next()
			return
		}

		returnTo := c.Request.URL.RequestURI()
		SetFlashCookie(c, flashCodec, view.Flash{
			Kind:    view.FlashWarning,
			Message: "Inicia sesión para continuar.",
		})
		c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
		c.Abort()
	}
}
