package access

import (
	"fmt"
	"strings"

	"github.com/wrp-ops/opsconsole/internal/domain"
)

// Section is a console area under /ops.
type Section string

const (
	SectionDashboard      Section = "dashboard"
	SectionCustomers      Section = "customers"
	SectionDrivers        Section = "drivers"
	SectionFleet          Section = "fleet"
	SectionDisposal       Section = "disposal"
	SectionRoutePlanning  Section = "route-planning"
	SectionServiceQueue   Section = "service-queue"
	SectionSchedule       Section = "schedule"
	SectionLiveTracking   Section = "live-tracking"
	SectionBilling        Section = "billing"
	SectionCustomerPortal Section = "customer-portal"
)

// Sections returns every console section in navigation order.
func Sections() []Section {
	return []Section{
		SectionDashboard,
		SectionCustomers,
		SectionDrivers,
		SectionFleet,
		SectionDisposal,
		SectionRoutePlanning,
		SectionServiceQueue,
		SectionSchedule,
		SectionLiveTracking,
		SectionBilling,
		SectionCustomerPortal,
	}
}

// Path is the section's URL path.
func (s Section) Path() string { return "/ops/" + string(s) }

// Rules describes who may open which part of the console.
//
// Ops guards the /ops tree as a whole; Sections optionally narrows individual
// sections. A section without an entry inherits the Ops allow-list.
type Rules struct {
	Fallback string
	Ops      []string
	Sections map[Section][]string
}

// DefaultRules guards /ops for office roles only; drivers are turned away.
func DefaultRules() Rules {
	return Rules{
		Fallback: DefaultFallback,
		Ops: []string{
			string(domain.RoleDispatcher),
			string(domain.RoleBilling),
			string(domain.RoleAdmin),
		},
	}
}

// RouteTable maps console sections to their gates.
type RouteTable struct {
	ops      *Gate
	sections map[Section]*Gate
}

// Entry is one row of the effective route table.
type Entry struct {
	Path  string
	Roles []string
}

// NewRouteTable validates rules and builds the gates. Allow-lists must be non-empty
// and may only name known sections. The fallback, when set, must be /ops or a
// section path: those are the only destinations that are either served or answered
// with a denial, never redirected again.
func NewRouteTable(rules Rules) (*RouteTable, error) {
	if len(rules.Ops) == 0 {
		return nil, fmt.Errorf("ops allow-list must not be empty")
	}
	known := make(map[Section]bool, len(Sections()))
	for _, s := range Sections() {
		known[s] = true
	}

	fallback, err := consolePath(rules.Fallback)
	if err != nil {
		return nil, err
	}
	opt := WithFallback(fallback)
	t := &RouteTable{
		ops:      NewGate(rules.Ops, opt),
		sections: make(map[Section]*Gate, len(rules.Sections)),
	}
	for s, roles := range rules.Sections {
		if !known[s] {
			return nil, fmt.Errorf("unknown section %q", s)
		}
		if len(roles) == 0 {
			return nil, fmt.Errorf("section %q: allow-list must not be empty", s)
		}
		t.sections[s] = NewGate(roles, opt)
	}
	return t, nil
}

// consolePath validates a fallback destination. Empty means DefaultFallback; a
// trailing slash is dropped.
func consolePath(p string) (string, error) {
	if p == "" {
		return DefaultFallback, nil
	}
	trimmed := p
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	if trimmed == DefaultFallback {
		return trimmed, nil
	}
	for _, s := range Sections() {
		if trimmed == s.Path() {
			return trimmed, nil
		}
	}
	return "", fmt.Errorf("fallback %q must be %s or a section path such as %s", p, DefaultFallback, SectionDashboard.Path())
}

// Ops is the gate in front of the whole /ops tree.
func (t *RouteTable) Ops() *Gate { return t.ops }

// GateFor returns the extra gate for a section, or nil when it only inherits Ops.
func (t *RouteTable) GateFor(s Section) *Gate {
	return t.sections[s]
}

// Entries lists /ops and every section with its effective allow-list.
// A section allow-list applies on top of the ops one, so the effective list is
// the intersection, in section order.
func (t *RouteTable) Entries() []Entry {
	out := []Entry{{Path: "/ops", Roles: t.ops.Roles()}}
	for _, s := range Sections() {
		roles := t.ops.Roles()
		if g := t.sections[s]; g != nil {
			roles = intersect(g.Roles(), roles)
		}
		out = append(out, Entry{Path: s.Path(), Roles: roles})
	}
	return out
}

func intersect(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, v := range b {
		in[v] = true
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if in[v] {
			out = append(out, v)
		}
	}
	return out
}
