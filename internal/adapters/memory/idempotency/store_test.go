package idempotency

import (
	"context"
	"testing"
	"time"

	memclock "github.com/wrp-ops/opsconsole/internal/adapters/memory/clock"
	"github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
)

func TestStore_PutThenGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	fp := idempotency.Fingerprint{
		Key:      "k1",
		Subject:  "1",
		Method:   "POST",
		Route:    "/ops/customer-portal/requests",
		BodyHash: "abc123",
	}
	rec := idempotency.Record{
		StatusCode:  201,
		ContentType: "application/json",
		Body:        []byte(`{"ok":true}`),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}

	if err := s.Put(context.Background(), fp, rec); err != nil {
		t.Fatalf("Put() err=%v", err)
	}

	got, ok, err := s.Get(context.Background(), fp)
	if err != nil {
		t.Fatalf("Get() err=%v", err)
	}
	if !ok {
		t.Fatalf("Get() ok=false, want true")
	}
	if got.StatusCode != rec.StatusCode || got.ContentType != rec.ContentType || string(got.Body) != string(rec.Body) {
		t.Fatalf("Get()=%+v, want %+v", got, rec)
	}

	got.Body[0] = 'X'
	again, _, _ := s.Get(context.Background(), fp)
	if string(again.Body) != `{"ok":true}` {
		t.Fatalf("stored body mutated through Get result: %q", again.Body)
	}
}

func TestStore_TTLExpiresRecords(t *testing.T) {
	t.Parallel()

	clk := memclock.NewManualClock(time.Date(2025, 9, 22, 9, 0, 0, 0, time.UTC))
	s := NewStore(WithTTL(time.Hour, clk))
	ctx := context.Background()
	fp := idempotency.Fingerprint{Key: "k1", Subject: "1", Method: "POST", Route: "/ops/customer-portal/requests"}

	if err := s.Put(ctx, fp, idempotency.Record{StatusCode: 201, Body: []byte("{}")}); err != nil {
		t.Fatalf("Put() err=%v", err)
	}
	clk.Advance(59 * time.Minute)
	if _, ok, _ := s.Get(ctx, fp); !ok {
		t.Fatalf("record expired before its ttl")
	}

	clk.Advance(time.Minute)
	if _, ok, _ := s.Get(ctx, fp); ok {
		t.Fatalf("record still served after its ttl")
	}
	if n := s.Len(); n != 0 {
		t.Fatalf("Len()=%d after expired lookup, want 0", n)
	}
}

func TestStore_TTLSweepsOnPut(t *testing.T) {
	t.Parallel()

	clk := memclock.NewManualClock(time.Date(2025, 9, 22, 9, 0, 0, 0, time.UTC))
	s := NewStore(WithTTL(time.Minute, clk))
	ctx := context.Background()

	for _, k := range []idempotency.Key{"a", "b", "c"} {
		if err := s.Put(ctx, idempotency.Fingerprint{Key: k}, idempotency.Record{StatusCode: 201}); err != nil {
			t.Fatalf("Put(%s) err=%v", k, err)
		}
	}
	if n := s.Len(); n != 3 {
		t.Fatalf("Len()=%d, want 3", n)
	}

	clk.Advance(2 * time.Minute)
	if err := s.Put(ctx, idempotency.Fingerprint{Key: "d"}, idempotency.Record{StatusCode: 201}); err != nil {
		t.Fatalf("Put(d) err=%v", err)
	}
	if n := s.Len(); n != 1 {
		t.Fatalf("Len()=%d after sweep, want 1", n)
	}
}

func TestStore_NoTTLKeepsRecords(t *testing.T) {
	t.Parallel()

	s := NewStore(WithTTL(0, nil))
	fp := idempotency.Fingerprint{Key: "k"}
	_ = s.Put(context.Background(), fp, idempotency.Record{StatusCode: 201})
	if _, ok, _ := s.Get(context.Background(), fp); !ok {
		t.Fatalf("record without ttl was dropped")
	}
}
