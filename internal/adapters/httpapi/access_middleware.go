package httpapi

import (
	"net/http"
	"strings"

	"github.com/wrp-ops/opsconsole/internal/app/access"
	"github.com/wrp-ops/opsconsole/internal/ports/out/identity"
)

// requireAccess lets a request through when g permits the current identity and
// redirects it to the gate's fallback otherwise.
//
// The identity is read once; the same snapshot is checked and stored in the request
// context. A denied request that already targets the fallback gets 403 instead of a
// redirect back to itself.
func requireAccess(g *access.Gate, src identity.Source) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := snapshotOf(src)
			dec := g.Check(snap)
			if dec.Allowed {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), snap.id)))
				return
			}
			if samePath(r.URL.Path, dec.Redirect) {
				writeError(w, r, http.StatusForbidden, "FORBIDDEN", "the current role may not open this page", nil)
				return
			}
			http.Redirect(w, r, dec.Redirect, http.StatusFound)
		})
	}
}

func samePath(a, b string) bool {
	trim := func(p string) string {
		if len(p) > 1 {
			return strings.TrimRight(p, "/")
		}
		return p
	}
	return trim(a) == trim(b)
}
