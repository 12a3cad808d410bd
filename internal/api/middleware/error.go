package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler answers with a JSON 500 when a handler recorded errors on the
// context without writing a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      c.Errors.Last().Error(),
			"request_id": GetRequestID(c),
		})
	}
}
