package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
)

// ReplayHeader marks a response served from the idempotency store.
const ReplayHeader = "Idempotent-Replayed"

// beginIdempotent handles the Idempotency-Key protocol for a mutating request.
//
// Two records are kept per key: one with an empty body hash that remembers which
// payload first used the key, and one under the payload hash holding the response.
// done reports that a response was already written.
func (s *Server) beginIdempotent(w http.ResponseWriter, r *http.Request, subject string, route string, body any) (fp idempotency.Fingerprint, done bool) {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if s.Idem == nil || key == "" {
		return idempotency.Fingerprint{}, false
	}
	bodyHash, err := hashBody(body)
	if err != nil {
		s.internalError(w, r, err)
		return idempotency.Fingerprint{}, true
	}
	ctx := r.Context()

	metaFP := idempotency.Fingerprint{
		Key:     idempotency.Key(key),
		Subject: subject,
		Method:  r.Method,
		Route:   route,
	}
	if meta, ok, err := s.Idem.Get(ctx, metaFP); err != nil {
		s.internalError(w, r, err)
		return idempotency.Fingerprint{}, true
	} else if ok {
		if string(meta.Body) != bodyHash {
			writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
			return idempotency.Fingerprint{}, true
		}
	} else if err := s.Idem.Put(ctx, metaFP, idempotency.Record{
		ContentType: "text/plain",
		Body:        []byte(bodyHash),
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		s.Log.Warn("idempotency key not recorded", zap.String("route", route), zap.Error(err))
	}

	respFP := metaFP
	respFP.BodyHash = bodyHash
	rec, ok, err := s.Idem.Get(ctx, respFP)
	if err != nil {
		s.internalError(w, r, err)
		return idempotency.Fingerprint{}, true
	}
	if ok && rec.StatusCode != 0 && strings.HasPrefix(rec.ContentType, "application/json") {
		w.Header().Set(ReplayHeader, "true")
		writeRawJSON(w, rec.StatusCode, rec.Body)
		return idempotency.Fingerprint{}, true
	}
	return respFP, false
}

// finishIdempotent stores a successful response for replay. It does nothing when
// the request carried no key.
func (s *Server) finishIdempotent(ctx context.Context, fp idempotency.Fingerprint, status int, body []byte) {
	if s.Idem == nil || fp.Key == "" {
		return
	}
	err := s.Idem.Put(ctx, fp, idempotency.Record{
		StatusCode:  status,
		ContentType: "application/json",
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.Log.Warn("idempotent response not stored", zap.String("route", fp.Route), zap.Error(err))
	}
}

func hashBody(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
