package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"jericho-storefront/internal/metrics"
	"jericho-storefront/internal/service/admin"
	"jericho-storefront/internal/service/storefront"
)

type ctxKey string

const (
	sessionCtxKey ctxKey = "session"
	adminCtxKey   ctxKey = "admin"
)

// sessionMiddleware resolves :sessionId and stores the session in the request context.
func sessionMiddleware(sessions *storefront.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("sessionId")
		if id == "" {
			writeError(c, http.StatusBadRequest, "session id is required")
			c.Abort()
			return
		}
		s, err := sessions.Get(id)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), sessionCtxKey, s))
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *storefront.Session {
	s, _ := c.Request.Context().Value(sessionCtxKey).(*storefront.Session)
	return s
}

// adminAuthMiddleware requires a valid console bearer token.
func adminAuthMiddleware(svc *admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			writeError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		subject, err := svc.Authenticate(token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), adminCtxKey, subject))
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	logger   *log.Logger
	now      func() time.Time
}

func newRateLimiter(rps float64, burst int, logger *log.Logger) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		logger:   logger,
		now:      time.Now,
	}
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		rl.sweep(now)
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops visitors idle for longer than limiterIdleTTL. Callers hold mu.
func (rl *rateLimiter) sweep(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, key)
		}
	}
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.limiter(key).Allow() {
			metrics.RecordRateLimited()
			rl.logger.Printf("http: rate limited ip=%s path=%s", key, c.Request.URL.Path)
			c.Header("Retry-After", "1")
			writeError(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
