// Package lifecycle holds process-level serving state shared across
// handlers. Readiness flips to draining during graceful shutdown so a
// load balancer stops routing new traffic before the listener closes.
package lifecycle

import "sync/atomic"

type Lifecycle struct {
	draining atomic.Bool
}

func (l *Lifecycle) SetDraining(draining bool) {
	if l == nil {
		return
	}
	l.draining.Store(draining)
}

func (l *Lifecycle) IsDraining() bool {
	if l == nil {
		return false
	}
	return l.draining.Load()
}
