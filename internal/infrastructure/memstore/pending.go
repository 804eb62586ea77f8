package memstore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/visapath-api/internal/domain"
)

// PendingStore holds at most one PendingRegistration per normalized email
// until the verification code is confirmed or the hold dies. It is
// process-local and non-durable: a restart discards all holds, which only
// forces affected users to register again.
//
// A single mutex serializes all operations, so concurrent requests for the
// same email cannot interleave mid-mutation. A background sweep bounds memory
// growth from abandoned registrations; correctness does not depend on it
// because readers check expiry themselves.
type PendingStore struct {
	mu      sync.Mutex
	entries map[string]*domain.PendingRegistration

	ttl  time.Duration
	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// Option customises a PendingStore.
type Option func(*PendingStore)

// WithClock replaces the wall clock, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *PendingStore) { s.now = now }
}

// NewPendingStore creates the store and starts its sweep loop.
// ttl is the verification window applied on Put and RefreshCode;
// sweepEvery is the interval between expired-entry sweeps.
// Call Stop on shutdown to end the sweep goroutine.
func NewPendingStore(ttl, sweepEvery time.Duration, opts ...Option) *PendingStore {
	s := &PendingStore{
		entries: make(map[string]*domain.PendingRegistration),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.sweep(sweepEvery)
	return s
}

// Put inserts or overwrites the hold for p.Email, starting a fresh
// verification window with zero attempts.
func (s *PendingStore) Put(p *domain.PendingRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cp := *p
	cp.Attempts = 0
	cp.ExpiresAt = now.Add(s.ttl)
	cp.CreatedAt = now
	s.entries[cp.Email] = &cp
}

// Get returns a copy of the hold for email. Entries past their window that
// the sweep has not yet removed are still returned so the caller can report
// expiry distinctly from absence; callers must treat them as logically dead
// (see domain.PendingRegistration.Expired).
func (s *PendingStore) Get(email string) (*domain.PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[email]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// Remove deletes the hold for email unconditionally.
func (s *PendingStore) Remove(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// RefreshCode rotates the verification code in place, resets attempts and
// extends the window from now. Returns false without effect when no live
// hold exists.
func (s *PendingStore) RefreshCode(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[email]
	if !ok {
		return false
	}
	now := s.now()
	if p.Expired(now) {
		delete(s.entries, email)
		return false
	}
	p.Code = code
	p.Attempts = 0
	p.ExpiresAt = now.Add(s.ttl)
	return true
}

// IncrementAttempts bumps the wrong-code counter and returns the new count.
// Returns 0 when no hold exists. The caller must Remove the hold once the
// count reaches the attempt limit.
func (s *PendingStore) IncrementAttempts(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[email]
	if !ok {
		return 0
	}
	p.Attempts++
	return p.Attempts
}

// Len returns the number of holds, expired-but-unswept included.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (s *PendingStore) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *PendingStore) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *PendingStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for email, p := range s.entries {
		if p.Expired(now) {
			delete(s.entries, email)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("swept expired pending registrations", "removed", removed, "remaining", len(s.entries))
	}
}
