package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	l := New(Config{RPS: 1, Burst: 2})
	now := time.Unix(1000, 0)

	for i := 0; i < 2; i++ {
		dec := l.Acquire("c1", KindRequest, now)
		if !dec.Allowed {
			t.Fatalf("request %d denied", i)
		}
		dec.Permit.Release()
	}

	dec := l.Acquire("c1", KindRequest, now)
	if dec.Allowed {
		t.Fatal("third request in the same instant should be denied")
	}
	if dec.RetryAfter < 1 {
		t.Fatalf("RetryAfter = %d, want >= 1", dec.RetryAfter)
	}

	dec = l.Acquire("c1", KindRequest, now.Add(1500*time.Millisecond))
	if !dec.Allowed {
		t.Fatal("request after refill denied")
	}
	dec.Permit.Release()
}

func TestClientsAreIsolated(t *testing.T) {
	l := New(Config{RPS: 1, Burst: 1})
	now := time.Unix(1000, 0)

	if dec := l.Acquire("c1", KindRequest, now); !dec.Allowed {
		t.Fatal("c1 first request denied")
	}
	if dec := l.Acquire("c1", KindRequest, now); dec.Allowed {
		t.Fatal("c1 second request should be denied")
	}
	if dec := l.Acquire("c2", KindRequest, now); !dec.Allowed {
		t.Fatal("c2 should have its own bucket")
	}
}

func TestConcurrencyCap(t *testing.T) {
	l := New(Config{MaxConcurrentRequests: 1})
	now := time.Unix(1000, 0)

	first := l.Acquire("c1", KindRequest, now)
	if !first.Allowed {
		t.Fatal("first request denied")
	}
	second := l.Acquire("c1", KindRequest, now)
	if second.Allowed {
		t.Fatal("second in-flight request should be denied")
	}

	first.Permit.Release()
	third := l.Acquire("c1", KindRequest, now)
	if !third.Allowed {
		t.Fatal("request after release denied")
	}
}

func TestSessionSlotsIndependentOfRequests(t *testing.T) {
	l := New(Config{RPS: 1, Burst: 1, MaxConcurrentSessions: 1})
	now := time.Unix(1000, 0)

	// Drain the request bucket.
	if dec := l.Acquire("c1", KindRequest, now); !dec.Allowed {
		t.Fatal("request denied")
	}
	if dec := l.Acquire("c1", KindRequest, now); dec.Allowed {
		t.Fatal("bucket should be empty")
	}

	// Sessions do not consume request tokens.
	s1 := l.Acquire("c1", KindSession, now)
	if !s1.Allowed {
		t.Fatal("first session denied")
	}
	if s2 := l.Acquire("c1", KindSession, now); s2.Allowed {
		t.Fatal("second concurrent session should be denied")
	}
	s1.Permit.Release()
	if s3 := l.Acquire("c1", KindSession, now); !s3.Allowed {
		t.Fatal("session after release denied")
	}
}

func TestSessionSlotsIndependentOfRequestSlots(t *testing.T) {
	l := New(Config{MaxConcurrentRequests: 1, MaxConcurrentSessions: 1})
	now := time.Unix(1000, 0)

	req := l.Acquire("c1", KindRequest, now)
	if !req.Allowed {
		t.Fatal("request denied")
	}
	if sess := l.Acquire("c1", KindSession, now); !sess.Allowed {
		t.Fatal("an in-flight request must not consume a session slot")
	}
}

func TestPermitReleaseIsIdempotent(t *testing.T) {
	l := New(Config{MaxConcurrentRequests: 1})
	now := time.Unix(1000, 0)

	dec := l.Acquire("c1", KindRequest, now)
	dec.Permit.Release()
	dec.Permit.Release()

	if next := l.Acquire("c1", KindRequest, now); !next.Allowed {
		t.Fatal("double release corrupted the slot count")
	}
}

func TestNilPermitReleaseIsSafe(t *testing.T) {
	var p *Permit
	p.Release()
}

func TestEntryEviction(t *testing.T) {
	l := New(Config{RPS: 1, Burst: 1, MaxEntries: 2, EntryTTL: time.Minute})
	now := time.Unix(1000, 0)

	l.Acquire("c1", KindRequest, now)
	l.Acquire("c2", KindRequest, now)
	// Old entries are evicted once the map is full.
	l.Acquire("c3", KindRequest, now.Add(2*time.Minute))

	l.mu.Lock()
	n := len(l.clients)
	l.mu.Unlock()
	if n > 2 {
		t.Fatalf("map grew past MaxEntries: %d", n)
	}
}

func TestKeyFromIPStableAndOpaque(t *testing.T) {
	a := KeyFromIP("203.0.113.7")
	b := KeyFromIP("203.0.113.7")
	c := KeyFromIP("203.0.113.8")
	if a != b {
		t.Fatal("same IP should map to the same key")
	}
	if a == c {
		t.Fatal("distinct IPs collided")
	}
	if len(a) != len("ip_")+32 {
		t.Fatalf("unexpected key shape: %q", a)
	}
}
