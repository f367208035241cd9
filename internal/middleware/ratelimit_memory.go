package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iliyamo/mental-wellness-api/internal/config"
)

// memoryBuckets is the single-process token bucket used when Redis is not
// configured. Idle buckets are dropped after cfg.TTL.
type memoryBuckets struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

type memoryBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newMemoryBuckets(cfg config.RateLimitConfig) *memoryBuckets {
	per := cfg.RefillInterval / time.Duration(cfg.RefillTokens)
	return &memoryBuckets{
		buckets: make(map[string]*memoryBucket),
		limit:   rate.Every(per),
		burst:   cfg.Capacity,
		ttl:     cfg.TTL,
	}
}

func (m *memoryBuckets) take(key string, now time.Time) decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	b, ok := m.buckets[key]
	if !ok {
		b = &memoryBucket{lim: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.seen = now

	r := b.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return decision{allowed: false, remaining: 0, retry: delay}
	}
	remaining := int64(b.lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return decision{allowed: true, remaining: remaining}
}

func (m *memoryBuckets) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.lastSweep = now
	for k, b := range m.buckets {
		if now.Sub(b.seen) > m.ttl {
			delete(m.buckets, k)
		}
	}
}
