package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"acme-ice-cream/flavors/internal/constants"
	reqctx "acme-ice-cream/flavors/internal/context"
	"acme-ice-cream/flavors/internal/logging"
	"acme-ice-cream/flavors/internal/metrics"
	"acme-ice-cream/flavors/internal/models/dtos/responses"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Idle buckets expire
// from the store so the map does not grow without bound.
type RateLimiter struct {
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
	metrics  *metrics.MetricsRegistry
}

func NewRateLimiter(rps float64, burst int, m *metrics.MetricsRegistry) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: cache.New(10*time.Minute, 5*time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
		metrics:  m,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, found := rl.limiters.Get(ip); found {
		// refresh expiry on use
		rl.limiters.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	if err := rl.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// lost a race with another request from the same client
		if v, found := rl.limiters.Get(ip); found {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			if rl.metrics != nil {
				rl.metrics.RateLimitedTotal.Inc()
			}
			body := responses.NewErrorResponse(constants.MsgTooManyRequests, reqctx.GetRequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if err := json.NewEncoder(w).Encode(body); err != nil {
				logging.Error("JSON encode failed", "error", err.Error())
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
