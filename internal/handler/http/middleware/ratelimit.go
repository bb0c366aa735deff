package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
)

// LimiterIdleTTL is how long an employee's budget survives without punches
const LimiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PunchRateLimiter throttles punch requests per employee.
type PunchRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewPunchRateLimiter allows perSecond sustained punches with the given burst per employee.
func NewPunchRateLimiter(perSecond float64, burst int) *PunchRateLimiter {
	return &PunchRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *PunchRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Sweep drops budgets idle longer than LimiterIdleTTL. It runs as a cron job.
func (l *PunchRateLimiter) Sweep(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > LimiterIdleTTL {
			delete(l.visitors, k)
		}
	}
	return nil
}

// Limit keys on the authenticated employee, falling back to the remote address.
func (l *PunchRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if actor, ok := ActorFromContext(r.Context()); ok {
			key = actor.EmployeeID
		}

		if !l.allow(key) {
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w, "Too many punch attempts, please retry shortly")
			return
		}

		next.ServeHTTP(w, r)
	})
}
