package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iwvelando/ifta-report/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an ID, reusing one supplied by the client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request once it has been served.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("op", "server.requestLogger"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Duration("duration", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request served", fields...)
			return
		}
		logger.Info("request served", fields...)
	}
}

func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	limiters  sync.Map
	perMinute int
	burst     int
	logger    *zap.Logger
}

// newRateLimiter builds a limiter; non-positive settings take the defaults.
func newRateLimiter(perMinute, burst int, logger *zap.Logger) *rateLimiter {
	if perMinute <= 0 {
		perMinute = constants.DefaultAdvisoryRequestsPerMinute
	}
	if burst <= 0 {
		burst = constants.DefaultAdvisoryBurst
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rateLimiter{perMinute: perMinute, burst: burst, logger: logger}
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	if val, ok := rl.limiters.Load(key); ok {
		return val.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = "unknown"
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.perMinute))
		if !rl.limiter(clientIP).Allow() {
			rl.logger.Warn("rate limit exceeded",
				zap.String("op", "server.rateLimiter"),
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
			)
			retryAfter := 60 / rl.perMinute
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
