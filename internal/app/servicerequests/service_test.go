package servicerequests

import (
	"context"
	"errors"
	"testing"
	"time"

	memclock "github.com/wrp-ops/opsconsole/internal/adapters/memory/clock"
	memrepo "github.com/wrp-ops/opsconsole/internal/adapters/memory/servicerequestrepo"
	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/intake"
)

type fakeForwarder struct {
	corr domain.CorrelationID
	err  error
	got  []domain.ServiceRequest
}

func (f *fakeForwarder) Forward(_ context.Context, r domain.ServiceRequest) (domain.CorrelationID, error) {
	f.got = append(f.got, r)
	return f.corr, f.err
}

func newTestService(fwd intake.Forwarder) (*Service, *memrepo.Repo) {
	repo := memrepo.NewRepo()
	clk := memclock.NewManualClock(time.Date(2025, 9, 22, 9, 0, 0, 0, time.UTC))
	svc := NewService(repo, fwd, clk, nil)
	n := 0
	svc.newID = func() domain.ServiceRequestID {
		n++
		return domain.ServiceRequestID("sr-" + string(rune('0'+n)))
	}
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestService_Submit_AppliesDefaultsAndNormalizes(t *testing.T) {
	t.Parallel()

	fwd := &fakeForwarder{corr: "corr-1"}
	svc, _ := newTestService(fwd)

	got, err := svc.Submit(context.Background(), SubmitInput{
		BusinessName: "  Office   Complex A ",
		Address:      "12  Main St",
		SubmittedBy:  "1",
	})
	if err != nil {
		t.Fatalf("Submit() err=%v", err)
	}
	if got.Type != domain.ServiceRollOff || got.Window != domain.WindowAM {
		t.Fatalf("defaults not applied: type=%q window=%q", got.Type, got.Window)
	}
	if got.BusinessName != "Office Complex A" || got.Address != "12 Main St" {
		t.Fatalf("not normalized: %+v", got)
	}
	if got.Container != nil {
		t.Fatalf("container=%v, want nil", *got.Container)
	}
	if got.CorrelationID != "corr-1" || got.SubmittedBy != "1" {
		t.Fatalf("got=%+v", got)
	}
	if len(fwd.got) != 1 || fwd.got[0].ID != got.ID {
		t.Fatalf("forwarded=%v", fwd.got)
	}

	stored, err := svc.Get(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("Get() err=%v", err)
	}
	if stored.CorrelationID != "corr-1" {
		t.Fatalf("stored correlation id=%q", stored.CorrelationID)
	}
}

func TestService_Submit_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(&fakeForwarder{})
	_, err := svc.Submit(context.Background(), SubmitInput{
		Type:      "hazmat",
		Container: strPtr("99yd"),
		Window:    "night",
	})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("err=%v, want VALIDATION_ERROR 422", err)
	}
	for _, k := range []string{"type", "container", "window", "businessName", "address"} {
		if _, ok := ae.Details[k]; !ok {
			t.Fatalf("details missing %q: %v", k, ae.Details)
		}
	}
	if list, _ := repo.List(context.Background(), 0); len(list) != 0 {
		t.Fatalf("invalid request was stored")
	}
}

func TestService_Submit_KeepsRequestWhenForwardFails(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(&fakeForwarder{corr: "corr-x", err: errors.New("upstream down")})
	got, err := svc.Submit(context.Background(), SubmitInput{
		Type:         "commercial",
		Container:    strPtr("20yd-rolloff"),
		BusinessName: "Construction Co.",
		Address:      "9 Site Rd",
		Window:       "pm",
	})
	if err != nil {
		t.Fatalf("Submit() err=%v", err)
	}
	if got.Container == nil || *got.Container != domain.Container20YdRollOff {
		t.Fatalf("container=%v", got.Container)
	}
	if got.CorrelationID != "corr-x" {
		t.Fatalf("correlation id=%q", got.CorrelationID)
	}
	list, err := svc.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("List() len=%d err=%v", len(list), err)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil)
	_, err := svc.Get(context.Background(), "missing")
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("err=%v, want 404", err)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := Options()
	if o.DefaultType != domain.ServiceRollOff || o.DefaultWindow != domain.WindowAM {
		t.Fatalf("defaults=%q/%q", o.DefaultType, o.DefaultWindow)
	}
	if len(o.Containers) != 6 || o.Containers[5].Label != "40 Yard Roll-Off" {
		t.Fatalf("containers=%+v", o.Containers)
	}
}
