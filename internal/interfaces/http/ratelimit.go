package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
)

// visitorLimiter keeps one token bucket per client IP and evicts buckets
// idle for longer than the TTL.
type visitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

func newVisitorLimiter(r float64, burst int) *visitorLimiter {
	vl := &visitorLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(r),
		burst:    burst,
	}
	go vl.cleanup()
	return vl
}

func (vl *visitorLimiter) allow(ip string) bool {
	vl.mu.Lock()
	defer vl.mu.Unlock()
	v, ok := vl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vl.rate, vl.burst)}
		vl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (vl *visitorLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		vl.mu.Lock()
		for ip, v := range vl.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(vl.visitors, ip)
			}
		}
		vl.mu.Unlock()
	}
}

// RateLimitMiddleware throttles per client IP. Used on the credential
// endpoints to slow brute-force attempts.
func RateLimitMiddleware(perSecond float64, burst int) fiber.Handler {
	vl := newVisitorLimiter(perSecond, burst)
	return func(c *fiber.Ctx) error {
		if !vl.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "too many requests, slow down"})
		}
		return c.Next()
	}
}
