package api

import (
	"net"
	"net/http"
	"sync"

	"huonganh/internal/config"

	"golang.org/x/time/rate"
)

// publicLimiter rate-limits the unauthenticated booking form per client IP.
type publicLimiter struct {
	cfg      config.APIRateLimitConfig
	limiters sync.Map // map[string]*rate.Limiter
}

func newPublicLimiter(cfg config.APIRateLimitConfig) *publicLimiter {
	return &publicLimiter{cfg: cfg}
}

func (l *publicLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

func (l *publicLimiter) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.getLimiter(host).Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}
