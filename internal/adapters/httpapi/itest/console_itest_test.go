package itest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/platform/correlation"
)

func TestConsole_DriverIsTurnedAway(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			s := newTestServer(t, b, "")

			status, body, _ := s.doJSON(t, http.MethodGet, "/ops/schedule", nil, nil)
			if status != http.StatusOK {
				t.Fatalf("admin schedule: status=%d body=%s", status, string(body))
			}

			s.session.SetRole(domain.RoleDriver)
			status, _, hdr := s.doJSON(t, http.MethodGet, "/ops/schedule", nil, nil)
			if status != http.StatusFound || hdr.Get("Location") != "/ops" {
				t.Fatalf("driver schedule: status=%d location=%q", status, hdr.Get("Location"))
			}
			status, body, hdr = s.doJSON(t, http.MethodGet, "/ops", nil, nil)
			requireErrorCode(t, status, body, http.StatusForbidden, "FORBIDDEN")
			requireHeaderPresent(t, hdr, "Content-Type")
		})
	}
}

func TestConsole_SubmissionIsForwardedWithCorrelationID(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get(correlation.HeaderName))
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(upstream.Close)

	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			s := newTestServer(t, b, upstream.URL)

			status, body, _ := s.doJSON(t, http.MethodPost, "/ops/customer-portal/requests", nil, map[string]any{
				"type":         "commercial",
				"container":    "4yd",
				"businessName": "Walmart Store #234",
				"address":      "1 Main St",
				"window":       "mid",
			})
			if status != http.StatusCreated {
				t.Fatalf("submit: status=%d body=%s", status, string(body))
			}
			got := mustUnmarshal[struct {
				Request struct {
					ID            string `json:"id"`
					CorrelationID string `json:"correlationId"`
				} `json:"request"`
			}](t, body)
			if got.Request.CorrelationID == "" {
				t.Fatalf("expected correlationId in response: %s", string(body))
			}

			mu.Lock()
			last := seen[len(seen)-1]
			mu.Unlock()
			if last != got.Request.CorrelationID {
				t.Fatalf("upstream saw %q, response has %q", last, got.Request.CorrelationID)
			}

			status, body, _ = s.doJSON(t, http.MethodGet, "/ops/customer-portal/requests/"+got.Request.ID, nil, nil)
			if status != http.StatusOK {
				t.Fatalf("get: status=%d body=%s", status, string(body))
			}
		})
	}
}

func TestConsole_UpstreamFailureKeepsSubmission(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			s := newTestServer(t, b, upstream.URL)

			status, body, _ := s.doJSON(t, http.MethodPost, "/ops/customer-portal/requests", nil, map[string]any{
				"businessName": "Office Complex A",
				"address":      "12 Main St",
			})
			if status != http.StatusCreated {
				t.Fatalf("submit: status=%d body=%s", status, string(body))
			}
			status, body, _ = s.doJSON(t, http.MethodGet, "/ops/customer-portal/requests", nil, nil)
			if status != http.StatusOK {
				t.Fatalf("list: status=%d", status)
			}
			list := mustUnmarshal[struct {
				Requests []map[string]any `json:"requests"`
			}](t, body)
			if len(list.Requests) == 0 {
				t.Fatalf("expected the submission to be stored")
			}
		})
	}
}
