package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorIdleTimeout = 3 * time.Minute
	writerIdleTimeout  = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitManager keeps per-IP limiters and evicts idle ones in the background.
type RateLimitManager struct {
	visitors   map[string]*visitor
	visitorsMu sync.Mutex
	writers    map[string]*visitor
	writersMu  sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewRateLimitManager creates a new rate limit manager with context-based lifecycle
func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors: make(map[string]*visitor),
		writers:  make(map[string]*visitor),
		ctx:      managerCtx,
		cancel:   cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor retrieves or creates the general limiter for ip. A nil limiter
// means limiting is disabled.
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow int, windowSeconds int, burst int) *rate.Limiter {
	if burst < requestsPerWindow {
		burst = requestsPerWindow
	}
	return getLimiter(m.visitors, &m.visitorsMu, ip, requestsPerWindow, windowSeconds, burst)
}

// GetWriteLimiter retrieves or creates the limiter applied to state-changing API calls.
func (m *RateLimitManager) GetWriteLimiter(ip string, requestsPerWindow int, windowSeconds int) *rate.Limiter {
	return getLimiter(m.writers, &m.writersMu, ip, requestsPerWindow, windowSeconds, requestsPerWindow)
}

func getLimiter(visitors map[string]*visitor, mu *sync.Mutex, ip string, requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	limit := rate.Limit(float64(requestsPerWindow) / float64(windowSeconds))
	limiter := rate.NewLimiter(limit, burst)
	visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// cleanupLoop periodically removes inactive rate limiters
func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

func (m *RateLimitManager) cleanup(now time.Time) {
	m.visitorsMu.Lock()
	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTimeout {
			delete(m.visitors, ip)
		}
	}
	m.visitorsMu.Unlock()

	m.writersMu.Lock()
	for ip, v := range m.writers {
		if now.Sub(v.lastSeen) > writerIdleTimeout {
			delete(m.writers, ip)
		}
	}
	m.writersMu.Unlock()
}

// Shutdown stops the cleanup goroutine and waits for it to finish
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
