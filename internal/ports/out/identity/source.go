package identity

import "github.com/wrp-ops/opsconsole/internal/domain"

// Source exposes the identity of the current session.
// ok=false means no identity is active (e.g. the session has not started).
type Source interface {
	Current() (id domain.Identity, ok bool)
}
