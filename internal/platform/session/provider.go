// Package session holds the identity of whoever is using the console right now.
package session

import (
	"context"
	"sync"

	"github.com/wrp-ops/opsconsole/internal/domain"
)

// Provider is the single source of truth for the active identity.
// It is safe for concurrent use: one writer at a time, any number of readers.
type Provider struct {
	mu     sync.RWMutex
	cur    domain.Identity
	active bool

	nextSub int
	subs    map[int]chan domain.Identity
}

// New returns a provider holding domain.DefaultIdentity.
func New() *Provider {
	id := domain.DefaultIdentity()
	return NewWithIdentity(&id)
}

// NewWithIdentity returns a provider holding *id, or no identity when id is nil.
func NewWithIdentity(id *domain.Identity) *Provider {
	p := &Provider{subs: make(map[int]chan domain.Identity)}
	if id != nil {
		p.cur = *id
		p.active = true
	}
	return p
}

// Current returns a copy of the active identity and whether one exists.
func (p *Provider) Current() (domain.Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur, p.active
}

// SetRole replaces the role of the active identity, leaving id and name untouched.
// The role is not validated. Without an active identity it does nothing.
func (p *Provider) SetRole(role domain.Role) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.cur = p.cur.WithRole(role)
	p.publishLocked()
}

// Begin makes id the active identity, replacing any previous one.
func (p *Provider) Begin(id domain.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cur = id
	p.active = true
	p.publishLocked()
}

// End clears the active identity. Subscribers are not notified of the absence;
// they keep their last value until the next Begin.
func (p *Provider) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cur = domain.Identity{}
	p.active = false
}

// Subscribe returns a channel that always holds the newest committed identity.
// Undelivered older values are replaced, so a slow reader only ever sees the latest.
// The current identity, if any, is delivered immediately.
// The channel is closed once ctx is done.
func (p *Provider) Subscribe(ctx context.Context) <-chan domain.Identity {
	ch := make(chan domain.Identity, 1)

	p.mu.Lock()
	key := p.nextSub
	p.nextSub++
	p.subs[key] = ch
	if p.active {
		ch <- p.cur
	}
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, key)
		close(ch)
		p.mu.Unlock()
	}()
	return ch
}

func (p *Provider) publishLocked() {
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- p.cur
	}
}
