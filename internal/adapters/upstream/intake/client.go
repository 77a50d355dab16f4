// Package intake forwards accepted service requests to the downstream intake API.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/platform/correlation"
	intakeport "github.com/wrp-ops/opsconsole/internal/ports/out/intake"
)

// Client POSTs service requests as JSON to a fixed URL. Every call goes through a
// correlation-tagged transport.
type Client struct {
	url  string
	http *http.Client
}

var _ intakeport.Forwarder = (*Client)(nil)

// NewClient builds a client for url. base may be nil; its transport is wrapped so
// requests carry X-Correlation-Id.
func NewClient(url string, base *http.Client, timeout time.Duration) *Client {
	c := correlation.NewClient(base)
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &Client{url: url, http: c}
}

type requestBody struct {
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	Container      *string            `json:"container"`
	ContainerLabel string             `json:"containerLabel,omitempty"`
	Details        requestDetails     `json:"details"`
	SubmittedAt    time.Time          `json:"submittedAt"`
	ServiceDate    openapi_types.Date `json:"serviceDate"`
}

type requestDetails struct {
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Window       string `json:"window"`
}

// Forward sends r and returns the correlation id the request went out with.
// Non-2xx responses are errors; the id is still returned when the request was sent.
func (c *Client) Forward(ctx context.Context, r domain.ServiceRequest) (domain.CorrelationID, error) {
	body := requestBody{
		ID:   string(r.ID),
		Type: string(r.Type),
		Details: requestDetails{
			BusinessName: r.BusinessName,
			Address:      r.Address,
			Window:       string(r.Window),
		},
		SubmittedAt: r.CreatedAt.UTC(),
		ServiceDate: openapi_types.Date{Time: r.CreatedAt.UTC()},
	}
	if r.Container != nil {
		v := string(*r.Container)
		body.Container = &v
		body.ContainerLabel = domain.ContainerLabel(*r.Container)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("forward service request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	var corr domain.CorrelationID
	if resp.Request != nil {
		corr = domain.CorrelationID(correlation.FromRequest(resp.Request))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return corr, fmt.Errorf("forward service request: upstream status %d", resp.StatusCode)
	}
	return corr, nil
}

// LogForwarder is used when no intake URL is configured: requests are only logged.
type LogForwarder struct {
	log *zap.Logger
}

var _ intakeport.Forwarder = LogForwarder{}

func NewLogForwarder(log *zap.Logger) LogForwarder {
	if log == nil {
		log = zap.NewNop()
	}
	return LogForwarder{log: log}
}

func (f LogForwarder) Forward(_ context.Context, r domain.ServiceRequest) (domain.CorrelationID, error) {
	container := ""
	if r.Container != nil {
		container = string(*r.Container)
	}
	f.log.Info("service request received",
		zap.String("service_request_id", string(r.ID)),
		zap.String("type", string(r.Type)),
		zap.String("container", container),
		zap.String("business_name", r.BusinessName),
		zap.String("address", r.Address),
		zap.String("window", string(r.Window)),
	)
	return "", nil
}
