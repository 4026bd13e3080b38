package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/DAVID1990208/SOLE/internal/shared/apperr"
	"github.com/DAVID1990208/SOLE/pkg/view"
)

// Fail records an error for the deferred handler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the error page for any handler that recorded an error
// without writing a response.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		rid := GetRequestID(c)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		c.Abort()
		c.HTML(status, "error.tmpl", view.ErrorPage{
			Flash:     GetFlash(c),
			Status:    status,
			Message:   apperr.PublicMessage(err),
			RequestID: rid,
		})
	}
}
