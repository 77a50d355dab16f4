package access

import (
	"slices"

	"github.com/wrp-ops/opsconsole/internal/ports/out/identity"
)

// DefaultFallback is where denied navigations are sent: the operations home.
const DefaultFallback = "/ops"

// Decision is the outcome of a gate check. A denial is not an error; it carries
// the destination the caller should be sent to instead.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Gate permits a navigation when the current identity's role is in its allow-list.
// A Gate is immutable and safe for concurrent use.
type Gate struct {
	roles    []string
	fallback string
}

type GateOption func(*Gate)

// WithFallback overrides the redirect destination used on denial.
func WithFallback(path string) GateOption {
	return func(g *Gate) {
		if path != "" {
			g.fallback = path
		}
	}
}

// NewGate builds a gate over an ordered allow-list of role names. The list is copied;
// duplicates are kept.
func NewGate(roles []string, opts ...GateOption) *Gate {
	g := &Gate{
		roles:    slices.Clone(roles),
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the gate against the identity src holds right now.
// Role matching is exact and case-sensitive. No identity means deny.
func (g *Gate) Check(src identity.Source) Decision {
	if src != nil {
		if id, ok := src.Current(); ok && slices.Contains(g.roles, string(id.Role)) {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: g.fallback}
}

func (g *Gate) Roles() []string { return slices.Clone(g.roles) }

func (g *Gate) Fallback() string { return g.fallback }
