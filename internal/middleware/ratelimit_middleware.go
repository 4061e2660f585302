package middleware

import (
	"sync"
	"time"
)

const (
	maxLoginFailures = 5
	failureWindow    = time.Minute
	throttleSweep    = 5 * time.Minute
)

// LoginThrottle blocks an IP after repeated failed logins. Only failures
// count; a successful login clears the window.
type LoginThrottle struct {
	mu       sync.Mutex
	failures map[string]*failureRecord
}

type failureRecord struct {
	count   int
	firstAt time.Time
}

func NewLoginThrottle() *LoginThrottle {
	t := &LoginThrottle{failures: make(map[string]*failureRecord)}
	go t.sweep()
	return t
}

// Blocked reports whether the IP has exhausted its failed attempts for the
// current window.
func (t *LoginThrottle) Blocked(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.failures[ip]
	if !ok {
		return false
	}
	if time.Since(rec.firstAt) > failureWindow {
		delete(t.failures, ip)
		return false
	}
	return rec.count >= maxLoginFailures
}

// RecordFailure counts one failed login against the IP.
func (t *LoginThrottle) RecordFailure(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.failures[ip]
	if !ok || time.Since(rec.firstAt) > failureWindow {
		t.failures[ip] = &failureRecord{count: 1, firstAt: time.Now()}
		return
	}
	rec.count++
}

// Reset clears the window, used after a successful login.
func (t *LoginThrottle) Reset(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, ip)
}

func (t *LoginThrottle) sweep() {
	ticker := time.NewTicker(throttleSweep)
	for range ticker.C {
		t.mu.Lock()
		for ip, rec := range t.failures {
			if time.Since(rec.firstAt) > failureWindow {
				delete(t.failures, ip)
			}
		}
		t.mu.Unlock()
	}
}
