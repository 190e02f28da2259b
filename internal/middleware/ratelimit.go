package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitWindow = 10 * time.Minute
	rateLimitMax    = 100
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter applies a fixed per-IP request window. Stale windows are
// swept by a background cron job so the map does not grow unbounded.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	log     *logrus.Logger
	cron    *cron.Cron
}

// NewRateLimiter creates a rate limiter and starts its sweep job
func NewRateLimiter(log *logrus.Logger) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		log:     log,
		cron:    cron.New(),
	}
	rl.cron.AddFunc("@every 10m", rl.sweep)
	rl.cron.Start()
	return rl
}

// Stop halts the background sweep job
func (rl *RateLimiter) Stop() {
	rl.cron.Stop()
}

// Middleware enforces the limit, answering 429 once an IP exhausts its
// window
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			rl.log.Warnf("rate limit exceeded for %s", ip)
			http.Error(w, "Too many requests, please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.windows[ip]
	if !ok || now.After(win.resetAt) {
		rl.windows[ip] = &window{count: 1, resetAt: now.Add(rateLimitWindow)}
		return true
	}

	win.count++
	return win.count <= rateLimitMax
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, win := range rl.windows {
		if now.After(win.resetAt) {
			delete(rl.windows, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
