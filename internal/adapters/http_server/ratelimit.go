package httpserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdle  = 10 * time.Minute
	sweepAtCount = 4096
)

type visitor struct {
	l    *rate.Limiter
	seen time.Time
}

// limiterSet hands out one token bucket per client key.
type limiterSet struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	now      func() time.Time
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	if burst < 1 {
		burst = 1
	}
	return &limiterSet{limit: rate.Limit(rps), burst: burst, visitors: map[string]*visitor{}, now: time.Now}
}

func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if len(s.visitors) >= sweepAtCount {
		for k, v := range s.visitors {
			if now.Sub(v.seen) > visitorIdle {
				delete(s.visitors, k)
			}
		}
	}
	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{l: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.seen = now
	return v.l.AllowN(now, 1)
}

type peerKey struct{}

// Peer records the socket peer host before any proxy header rewriting.
func Peer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerKey{}, hostOnly(r.RemoteAddr))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// peerOf is the limiter key. Client-supplied forwarding headers never count.
func peerOf(r *http.Request) string {
	if p, ok := r.Context().Value(peerKey{}).(string); ok && p != "" {
		return p
	}
	return hostOnly(r.RemoteAddr)
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	return addr
}

// RateLimit throttles write requests (POST) per client IP. rps <= 0 disables it.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	set := newLimiterSet(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && !set.allow(peerOf(r)) {
				w.Header().Set("Retry-After", "1")
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
