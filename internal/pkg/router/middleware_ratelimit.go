package router

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type rateEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a per-client-IP rate limiting middleware. It allows r
// events per second with the given burst. Stale per-IP limiters are evicted
// after ten minutes of inactivity.
//
// Intended for endpoints that trigger outbound email, where unthrottled
// requests would let a caller flood someone's inbox with codes.
func RateLimit(r rate.Limit, burst int) Middleware {
	var (
		mu      sync.Mutex
		entries = make(map[string]*rateEntry)
		sweep   = time.Now()
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ip := req.RemoteAddr

			mu.Lock()
			if time.Since(sweep) > 10*time.Minute {
				for k, e := range entries {
					if time.Since(e.lastSeen) > 10*time.Minute {
						delete(entries, k)
					}
				}
				sweep = time.Now()
			}

			e, ok := entries[ip]
			if !ok {
				e = &rateEntry{limiter: rate.NewLimiter(r, burst)}
				entries[ip] = e
			}
			e.lastSeen = time.Now()
			allowed := e.limiter.Allow()
			mu.Unlock()

			if !allowed {
				writeJSON(w, map[string]string{
					"message": "Too many requests, please try again later",
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}
