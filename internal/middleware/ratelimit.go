package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// IPRateLimiter limits requests per client IP using a token bucket per IP.
type IPRateLimiter struct {
	ips   map[string]*rate.Limiter
	mu    sync.RWMutex
	limit rate.Limit
	burst int
}

// NewIPRateLimiter creates a per-IP rate limiter. limit is events per second;
// for N per minute use rate.Limit(float64(N)/60.0). burst is max tokens per bucket.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		limit: limit,
		burst: burst,
	}
}

// WriteRateLimiter allows perMinute create/update/delete submissions per IP,
// with bursts of up to a sixth of that (at least 1).
func WriteRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := perMinute / 6
	if burst < 1 {
		burst = 1
	}
	return NewIPRateLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.ips[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.ips[ip]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.limit, l.burst)
	l.ips[ip] = lim
	return lim
}

// clientIP returns the host part of RemoteAddr. Run chi's RealIP first when
// the server sits behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware returns 429 when the client IP exceeds the rate. Only POST
// requests spend tokens; page views are never limited.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !l.getLimiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Muitas requisições. Tente novamente em instantes.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
