package mw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/borex256/century-music-empire/pkg/core"
	"github.com/borex256/century-music-empire/pkg/gateway/clientip"
	"github.com/borex256/century-music-empire/pkg/gateway/config"
	"github.com/borex256/century-music-empire/pkg/gateway/ratelimit"
)

func RateLimit(cfg config.Config, limiter *ratelimit.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Health endpoints must remain cheap and reliable.
		if r.URL.Path == "/healthz" || r.URL.Path == "/readyz" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		client := ClientKey(r, cfg)

		dec := limiter.Acquire(client, ratelimit.KindRequest, time.Now())
		if !dec.Allowed {
			reqID, _ := RequestIDFrom(r.Context())
			if dec.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(dec.RetryAfter))
			}
			writeJSONError(w, http.StatusTooManyRequests, &core.Error{
				Type:      core.ErrRateLimit,
				Message:   "rate limit exceeded",
				RequestID: reqID,
				RetryAfter: func() *int {
					if dec.RetryAfter <= 0 {
						return nil
					}
					v := dec.RetryAfter
					return &v
				}(),
			})
			return
		}
		if dec.Permit != nil {
			defer dec.Permit.Release()
		}

		next.ServeHTTP(w, r)
	})
}

// ClientKey buckets a request by caller IP for limiter bookkeeping.
func ClientKey(r *http.Request, cfg config.Config) string {
	ip := clientip.Resolve(r, cfg.TrustProxyHeaders)
	if ip == "" {
		return "anonymous"
	}
	return ratelimit.KeyFromIP(ip)
}
