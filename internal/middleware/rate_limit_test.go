// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bazaarhq/bazaar-backend/internal/config"
)

func TestRateLimiterBurstThenThrottle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Refill is an hour out, so only the burst tokens are spendable.
	rl := NewRateLimiter(rate.Every(time.Hour), 2)

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestNewRateLimitersFromConfig(t *testing.T) {
	limits := NewRateLimiters(config.RateLimitConfig{
		GeneralPerSecond: 5,
		GeneralBurst:     10,
		AuthPerMinute:    2,
		AuthBurst:        3,
		UploadPerMinute:  4,
		UploadBurst:      0,
	})

	assert.Equal(t, rate.Limit(5), limits.General.rate)
	assert.Equal(t, 10, limits.General.burst)
	assert.Equal(t, rate.Every(30*time.Second), limits.Auth.rate)
	assert.Equal(t, 3, limits.Auth.burst)
	// Misconfigured zero values clamp to one instead of panicking.
	assert.Equal(t, 1, limits.Upload.burst)
}
