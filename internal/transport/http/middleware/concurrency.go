package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "cutconnect/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests so the store pool is not swamped.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !sem.TryAcquire(1) {
			if err := sem.Acquire(c.Request.Context(), 1); err != nil {
				c.AbortWithStatusJSON(resp.CodeUnavailable, resp.Error(resp.CodeUnavailable, "server busy"))
				return
			}
		}
		defer sem.Release(1)
		c.Next()
	}
}
