package idempotency

import (
	"context"
	"sync"
	"time"

	clockport "github.com/wrp-ops/opsconsole/internal/ports/out/clock"
	"github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
)

// Store is an in-memory idempotency.Store, safe for concurrent use.
// Without WithTTL records live until the process exits.
type Store struct {
	mu        sync.Mutex
	m         map[idempotency.Fingerprint]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	rec     idempotency.Record
	expires time.Time
}

type Option func(*Store)

// WithTTL expires records ttl after they were stored, measured on clk.
// Expired records are dropped on lookup and swept at most once per ttl on Put.
func WithTTL(ttl time.Duration, clk clockport.Clock) Option {
	return func(s *Store) {
		if ttl <= 0 {
			return
		}
		s.ttl = ttl
		if clk != nil {
			s.now = clk.Now
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		m:   make(map[idempotency.Fingerprint]entry),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, fp idempotency.Fingerprint) (idempotency.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[fp]
	if !ok {
		return idempotency.Record{}, false, nil
	}
	if s.expired(e, s.now()) {
		delete(s.m, fp)
		return idempotency.Record{}, false, nil
	}
	rec := e.rec
	rec.Body = append([]byte(nil), rec.Body...)
	return rec, true, nil
}

func (s *Store) Put(_ context.Context, fp idempotency.Fingerprint, rec idempotency.Record) error {
	rec.Body = append([]byte(nil), rec.Body...)
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := entry{rec: rec}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
		if now.Sub(s.lastSweep) >= s.ttl {
			s.sweepLocked(now)
		}
	}
	s.m[fp] = e
	return nil
}

// Len reports how many records are held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Store) expired(e entry, now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

func (s *Store) sweepLocked(now time.Time) {
	for fp, e := range s.m {
		if s.expired(e, now) {
			delete(s.m, fp)
		}
	}
	s.lastSweep = now
}
