package httpapi

import (
	"context"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/identity"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity the access gate admitted the request with.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(domain.Identity)
	return v, ok
}

// snapshot is an identity.Source frozen at one read.
type snapshot struct {
	id domain.Identity
	ok bool
}

func (s snapshot) Current() (domain.Identity, bool) { return s.id, s.ok }

func snapshotOf(src identity.Source) snapshot {
	if src == nil {
		return snapshot{}
	}
	id, ok := src.Current()
	return snapshot{id: id, ok: ok}
}
