// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/canonical/squad-service/internal/http/types"
	"github.com/canonical/squad-service/internal/logging"
)

const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	swept    time.Time

	rate  rate.Limit
	burst int
	now   func() time.Time

	logger logging.LoggerInterface
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func (i *IPRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()

	if now.Sub(i.swept) > idleTTL {
		for key, v := range i.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(i.visitors, key)
			}
		}
		i.swept = now
	}

	v, ok := i.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.visitors[ip] = v
	}

	v.lastSeen = now

	return v.limiter
}

// Allow reports whether a request from ip may proceed
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.limiter(ip).AllowN(i.now(), 1)
}

func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !i.Allow(ip) {
			i.logger.Security().RateLimitExceeded(ip, r.URL.Path)

			w.Header().Set("Retry-After", "60")
			types.WriteError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewIPRateLimiter allows perMinute requests per minute per address with the given burst
func NewIPRateLimiter(perMinute float64, burst int, logger logging.LoggerInterface) *IPRateLimiter {
	i := new(IPRateLimiter)

	i.visitors = make(map[string]*visitor)
	i.rate = rate.Limit(perMinute / 60.0)
	i.burst = burst
	i.now = time.Now
	i.swept = i.now()

	i.logger = logger

	return i
}
