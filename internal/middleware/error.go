package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers from panics and converts accumulated gin errors
// into a single JSON error body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			last := c.Errors.Last()
			log.Printf("request error: %v", last.Err)
			status := c.Writer.Status()
			if status < 400 {
				status = http.StatusInternalServerError
			}
			c.JSON(status, ErrorResponse{Error: last.Error()})
		}
	}
}
