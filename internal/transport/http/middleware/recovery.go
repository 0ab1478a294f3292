package middleware

import (
	"github.com/gin-gonic/gin"

	resp "salon-suite/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, "internal error"))
			}
		}()
		c.Next()
	}
}
