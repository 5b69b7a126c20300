// Package ratelimit bounds per-client traffic inside a single gateway
// process. Each client carries a token bucket for request rate plus two
// slot pools, one for in-flight requests and one for live sessions.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sync"
	"time"
)

// Kind selects which pool an Acquire draws from.
type Kind int

const (
	// KindRequest consumes a rate token and an in-flight request slot.
	KindRequest Kind = iota
	// KindSession takes a live session slot only. Sessions are long-lived
	// and never consume rate tokens.
	KindSession
)

type Config struct {
	RPS   float64
	Burst int

	MaxConcurrentRequests int
	MaxConcurrentSessions int

	// Operational bounds for the in-memory map (single-process only).
	MaxEntries int
	EntryTTL   time.Duration
}

type Limiter struct {
	cfg Config

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	mu sync.Mutex

	bucket   bucket
	inFlight int
	sessions int

	lastSeen time.Time
}

func New(cfg Config) *Limiter {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10_000
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = 30 * time.Minute
	}
	return &Limiter{
		cfg:     cfg,
		clients: make(map[string]*client),
	}
}

// KeyFromIP hashes a client IP into a map key so raw addresses are never
// held long-term in memory.
func KeyFromIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	// 16 bytes => 32 hex chars; enough to avoid collisions in practice.
	return "ip_" + hex.EncodeToString(sum[:16])
}

// Permit returns a held slot to its pool. Safe to release more than once
// and safe on a nil receiver, so callers can defer unconditionally.
type Permit struct {
	once    sync.Once
	release func()
}

func (p *Permit) Release() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if p.release != nil {
			p.release()
		}
	})
}

type Decision struct {
	Allowed    bool
	RetryAfter int
	Permit     *Permit
}

// Acquire admits one unit of work for the keyed client. A denied
// Decision carries a RetryAfter hint in seconds; an allowed one carries
// the Permit that frees the slot.
func (l *Limiter) Acquire(key string, kind Kind, now time.Time) Decision {
	if key == "" {
		key = "anonymous"
	}

	c := l.lookup(key, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen = now

	if kind == KindRequest && l.cfg.RPS > 0 && l.cfg.Burst > 0 {
		ok, retryAfter := c.bucket.take(now, l.cfg.RPS, float64(l.cfg.Burst))
		if !ok {
			return Decision{RetryAfter: retryAfter}
		}
	}

	limit, held := l.cfg.MaxConcurrentRequests, &c.inFlight
	if kind == KindSession {
		limit, held = l.cfg.MaxConcurrentSessions, &c.sessions
	}
	if limit <= 0 {
		return Decision{Allowed: true, Permit: &Permit{}}
	}
	if *held >= limit {
		return Decision{RetryAfter: 1}
	}
	*held++
	return Decision{Allowed: true, Permit: &Permit{release: func() {
		c.mu.Lock()
		if *held > 0 {
			*held--
		}
		c.mu.Unlock()
	}}}
}

func (l *Limiter) lookup(key string, now time.Time) *client {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clients[key]; ok {
		return c
	}
	if len(l.clients) >= l.cfg.MaxEntries {
		l.evictLocked(now)
	}
	c := &client{
		bucket:   bucket{tokens: float64(l.cfg.Burst), last: now},
		lastSeen: now,
	}
	l.clients[key] = c
	return c
}

// evictLocked drops stale entries first and, if the map is still full,
// arbitrary ones. Bounded memory wins over fairness to evicted clients.
func (l *Limiter) evictLocked(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.EntryTTL {
			delete(l.clients, k)
		}
	}
	for k := range l.clients {
		if len(l.clients) < l.cfg.MaxEntries {
			return
		}
		delete(l.clients, k)
	}
}

// bucket is a refillable token bucket. Callers hold the owning client's
// lock; take assumes single-threaded access.
type bucket struct {
	tokens float64
	last   time.Time
}

func (b *bucket) take(now time.Time, rps, burst float64) (allowed bool, retryAfter int) {
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(burst, b.tokens+elapsed*rps)
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := int(math.Ceil((1 - b.tokens) / rps))
	if wait < 1 {
		wait = 1
	}
	return false, wait
}
