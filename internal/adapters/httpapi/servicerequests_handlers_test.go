package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/wrp-ops/opsconsole/internal/platform/session"
)

func decodeServiceRequest(t *testing.T, b []byte) ServiceRequest {
	t.Helper()
	var resp ServiceRequestResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(b))
	}
	return resp.Request
}

func TestServiceRequests_SubmitListGet(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, session.New(), nil)
	container := "20yd-rolloff"
	rr := do(t, h, http.MethodPost, "/ops/customer-portal/requests", SubmitServiceRequestRequest{
		Container:    &container,
		BusinessName: "Office Complex A",
		Address:      "12 Main St",
		Window:       "pm",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: status=%d body=%s", rr.Code, rr.Body.String())
	}
	got := decodeServiceRequest(t, rr.Body.Bytes())
	if got.Type != "rolloff" || got.Window != "pm" || got.ContainerLabel != "20 Yard Roll-Off" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.SubmittedBy != "1" {
		t.Fatalf("submittedBy=%q want=1", got.SubmittedBy)
	}

	rr = do(t, h, http.MethodGet, "/ops/customer-portal/requests", nil, nil)
	var list ServiceRequestsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list.Requests) != 1 || list.Requests[0].Id != got.Id {
		t.Fatalf("list=%+v", list.Requests)
	}

	rr = do(t, h, http.MethodGet, "/ops/customer-portal/requests/"+got.Id.String(), nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: status=%d", rr.Code)
	}
	requireErrorCode(t, do(t, h, http.MethodGet, "/ops/customer-portal/requests/missing", nil, nil), http.StatusNotFound, "SERVICE_REQUEST_NOT_FOUND")
}

func TestServiceRequests_Validation(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, session.New(), nil)
	rr := do(t, h, http.MethodPost, "/ops/customer-portal/requests", SubmitServiceRequestRequest{Type: "compost"}, nil)
	er := requireErrorCode(t, rr, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
	details, err := er.Error.Details.Get()
	if err != nil {
		t.Fatalf("details missing: %v", err)
	}
	for _, k := range []string{"type", "businessName", "address"} {
		if _, ok := details[k]; !ok {
			t.Fatalf("details missing %q: %v", k, details)
		}
	}

	requireErrorCode(t, do(t, h, http.MethodPost, "/ops/customer-portal/requests", nil, nil), http.StatusUnprocessableEntity, "VALIDATION_ERROR")
}

func TestServiceRequests_IdempotentReplay(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, session.New(), nil)
	body := SubmitServiceRequestRequest{BusinessName: "Walmart Store #234", Address: "1 Main St"}
	hdr := map[string]string{"Idempotency-Key": "k-1"}

	first := do(t, h, http.MethodPost, "/ops/customer-portal/requests", body, hdr)
	if first.Code != http.StatusCreated {
		t.Fatalf("first: status=%d body=%s", first.Code, first.Body.String())
	}
	second := do(t, h, http.MethodPost, "/ops/customer-portal/requests", body, hdr)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay: status=%d", second.Code)
	}
	if second.Header().Get(ReplayHeader) != "true" {
		t.Fatalf("expected %s header on replay", ReplayHeader)
	}
	if decodeServiceRequest(t, first.Body.Bytes()).Id != decodeServiceRequest(t, second.Body.Bytes()).Id {
		t.Fatalf("replay returned a different request")
	}

	rr := do(t, h, http.MethodGet, "/ops/customer-portal/requests", nil, nil)
	var list ServiceRequestsResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if len(list.Requests) != 1 {
		t.Fatalf("replay created a duplicate: %d requests", len(list.Requests))
	}

	body.Address = "2 Main St"
	requireErrorCode(t, do(t, h, http.MethodPost, "/ops/customer-portal/requests", body, hdr), http.StatusConflict, "IDEMPOTENCY_KEY_REUSE")
}

func TestServiceRequests_PortalOptions(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, session.New(), nil)
	rr := do(t, h, http.MethodGet, "/ops/customer-portal", nil, nil)
	var opts PortalOptionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if opts.DefaultType != "rolloff" || opts.DefaultWindow != "am" || len(opts.Containers) != 6 {
		t.Fatalf("options=%+v", opts)
	}
}
