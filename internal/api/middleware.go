package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// instrument counts requests and observes their duration under route.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		startTime := time.Now()

		next.ServeHTTP(rec, r)

		s.metrics.RequestSeconds.WithLabelValues(route).Observe(time.Since(startTime).Seconds())
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}

// rateLimit answers 429 once a client IP exceeds its token bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			s.writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cors sets the configured Access-Control-Allow-Origin and answers preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// sentryMiddleware recovers panics, reports them and lets net/http log them.
func sentryMiddleware(next http.Handler) http.Handler {
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})

	return sentryHandler.Handle(next)
}

// clientLimiter keeps one token bucket per client IP.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientEntry
	now     func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(perSecond float64) *clientLimiter {
	if perSecond <= 0 {
		return &clientLimiter{limit: rate.Inf, now: time.Now, clients: map[string]*clientEntry{}}
	}

	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   max(int(perSecond), 1),
		clients: map[string]*clientEntry{},
		now:     time.Now,
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	if cl.limit == rate.Inf {
		return true
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	for key, entry := range cl.clients {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(cl.clients, key)
		}
	}

	entry, ok := cl.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
