package scheduler

import (
	"sync"
	"time"
)

// Provider reachability values reported by the probe job
const (
	StatusOK           = "ok"
	StatusUnconfigured = "unconfigured"
	StatusUnreachable  = "unreachable"
	StatusUnknown      = "unknown"
)

// StatusBoard holds the last probe result per provider. Safe for concurrent use.
type StatusBoard struct {
	mu      sync.RWMutex
	status  map[string]string
	checked time.Time
}

func NewStatusBoard(names ...string) *StatusBoard {
	b := &StatusBoard{status: make(map[string]string, len(names))}
	for _, n := range names {
		b.status[n] = StatusUnknown
	}
	return b
}

func (b *StatusBoard) set(name, status string, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[name] = status
	b.checked = at
}

// Snapshot returns a copy of the current statuses
func (b *StatusBoard) Snapshot() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.status))
	for k, v := range b.status {
		out[k] = v
	}
	return out
}

// CheckedAt is the time of the last probe, zero before the first one
func (b *StatusBoard) CheckedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.checked
}
