package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wrp-ops/opsconsole/internal/adapters/httpapi"
	memcatalog "github.com/wrp-ops/opsconsole/internal/adapters/memory/catalog"
	memclock "github.com/wrp-ops/opsconsole/internal/adapters/memory/clock"
	memidempotency "github.com/wrp-ops/opsconsole/internal/adapters/memory/idempotency"
	memrepo "github.com/wrp-ops/opsconsole/internal/adapters/memory/servicerequestrepo"
	pgidempotency "github.com/wrp-ops/opsconsole/internal/adapters/postgres/idempotency"
	pgrepo "github.com/wrp-ops/opsconsole/internal/adapters/postgres/servicerequestrepo"
	postgres_testutil "github.com/wrp-ops/opsconsole/internal/adapters/postgres/testutil"
	intakeclient "github.com/wrp-ops/opsconsole/internal/adapters/upstream/intake"
	"github.com/wrp-ops/opsconsole/internal/app/ops"
	"github.com/wrp-ops/opsconsole/internal/app/servicerequests"
	"github.com/wrp-ops/opsconsole/internal/platform/session"
	idempotencyport "github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
	intakeport "github.com/wrp-ops/opsconsole/internal/ports/out/intake"
	servicerequestrepoport "github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	session *session.Provider
}

// newTestServer runs the console against backend b. Submissions are forwarded to
// intakeURL when it is non-empty.
func newTestServer(t *testing.T, b backend, intakeURL string) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2025, 9, 22, 8, 0, 0, 0, time.UTC))

	var (
		repo      servicerequestrepoport.Repository
		idemStore idempotencyport.Store
	)

	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		repo = pgrepo.NewRepo(pool)
		idemStore = pgidempotency.NewStore(pool)
	case backendMemory:
		repo = memrepo.NewRepo()
		idemStore = memidempotency.NewStore()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	var fwd intakeport.Forwarder
	if intakeURL != "" {
		fwd = intakeclient.NewClient(intakeURL, nil, 2*time.Second)
	} else {
		fwd = intakeclient.NewLogForwarder(nil)
	}

	sess := session.New()
	api := httpapi.NewServer(
		sess,
		ops.NewService(memcatalog.New(clk)),
		servicerequests.NewService(repo, fwd, clk, nil),
		idemStore,
		nil,
	)

	srv := httptest.NewServer(httpapi.NewRouter(api, httpapi.RouterOptions{}))
	t.Cleanup(srv.Close)

	client := srv.Client()
	// Redirects are part of what these tests assert on.
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	return &testServer{
		baseURL: srv.URL,
		client:  client,
		session: sess,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, headers map[string]string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}
