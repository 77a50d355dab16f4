package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/platform/correlation"
)

func sampleRequest() domain.ServiceRequest {
	c := domain.Container6Yd
	return domain.ServiceRequest{
		ID:           "sr-1",
		Type:         domain.ServiceCommercial,
		Container:    &c,
		BusinessName: "Walmart Store #234",
		Address:      "1 Main St",
		Window:       domain.WindowMid,
		CreatedAt:    time.Date(2025, 9, 22, 9, 30, 0, 0, time.UTC),
	}
}

func TestClient_ForwardSendsTaggedJSON(t *testing.T) {
	t.Parallel()

	var (
		gotCorr string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCorr = r.Header.Get(correlation.HeaderName)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, srv.Client(), time.Second)
	corr, err := c.Forward(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, gotCorr)
	assert.Equal(t, gotCorr, string(corr))
	assert.Equal(t, "commercial", gotBody["type"])
	assert.Equal(t, "6yd", gotBody["container"])
	assert.Equal(t, "6 Yard", gotBody["containerLabel"])
	assert.Equal(t, "2025-09-22", gotBody["serviceDate"])
	details, ok := gotBody["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mid", details["window"])
}

func TestClient_ForwardNon2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	corr, err := NewClient(srv.URL, srv.Client(), 0).Forward(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.NotEmpty(t, corr, "correlation id is known once the request was sent")
}

func TestClient_ForwardTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	corr, err := NewClient(url, nil, time.Second).Forward(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Empty(t, corr)
}

func TestLogForwarder_Logs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	corr, err := NewLogForwarder(zap.New(core)).Forward(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Empty(t, corr)

	entries := logs.FilterMessage("service request received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sr-1", entries[0].ContextMap()["service_request_id"])
}
