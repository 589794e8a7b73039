package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors queued on the context into a single JSON
// response, so handlers can c.Error(...) and bail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": c.Errors.Last().Error()})
	}
}
