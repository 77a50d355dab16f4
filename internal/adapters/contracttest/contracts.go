package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wrp-ops/opsconsole/internal/domain"
	idempotencyport "github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
	servicerequestport "github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

type CleanupFunc = func()

type ServiceRequestRepoFactory func(t *testing.T) (servicerequestport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      idempotencyport.Key("k-" + uuid.NewString()),
		Subject:  "1",
		Method:   "POST",
		Route:    "/ops/customer-portal/requests",
		BodyHash: "",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	rec := idempotencyport.Record{
		StatusCode:  201,
		ContentType: "application/json",
		Body:        []byte(`{"id":"abc"}`),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != `{"id":"abc"}` || got.ContentType != "application/json" || got.StatusCode != 201 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// A different subject must not see the record.
	other := fp
	other.Subject = "2"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get other subject: ok=%v err=%v", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte(`{"id":"def"}`)
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != `{"id":"def"}` {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}
}

func RunServiceRequestRepo(t *testing.T, newRepo ServiceRequestRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Postgres stores microseconds; later runs must sort ahead of rows left by earlier ones.
	base := time.Now().UTC().Truncate(time.Microsecond)
	container := domain.Container6Yd
	older := domain.ServiceRequest{
		ID:           domain.ServiceRequestID(uuid.NewString()),
		Type:         domain.ServiceCommercial,
		Container:    &container,
		BusinessName: "Walmart Store #234",
		Address:      "1 Main St",
		Window:       domain.WindowAM,
		SubmittedBy:  "1",
		CreatedAt:    base,
	}
	newer := domain.ServiceRequest{
		ID:           domain.ServiceRequestID(uuid.NewString()),
		Type:         domain.ServiceRollOff,
		BusinessName: "Construction Co.",
		Address:      "9 Site Rd",
		Window:       domain.WindowPM,
		CreatedAt:    base.Add(time.Minute),
	}
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("Create older: %v", err)
	}
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("Create newer: %v", err)
	}
	if err := repo.Create(ctx, older); !errors.Is(err, servicerequestport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate err=%v, want ErrAlreadyExists", err)
	}

	got, err := repo.GetByID(ctx, older.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BusinessName != older.BusinessName || got.Container == nil || *got.Container != domain.Container6Yd {
		t.Fatalf("GetByID()=%+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Fatalf("CreatedAt=%v, want %v", got.CreatedAt, base)
	}
	if _, err := repo.GetByID(ctx, domain.ServiceRequestID(uuid.NewString())); !errors.Is(err, servicerequestport.ErrNotFound) {
		t.Fatalf("GetByID(missing) err=%v, want ErrNotFound", err)
	}

	list, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) < 2 || list[0].ID != newer.ID {
		t.Fatalf("List() not newest first: %#v", list)
	}
	if list[0].Container != nil {
		t.Fatalf("nil container should round-trip as nil")
	}
	limited, err := repo.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("List(1) len=%d err=%v", len(limited), err)
	}

	corr := domain.CorrelationID(uuid.NewString())
	if err := repo.SetCorrelationID(ctx, older.ID, corr); err != nil {
		t.Fatalf("SetCorrelationID: %v", err)
	}
	got, err = repo.GetByID(ctx, older.ID)
	if err != nil || got.CorrelationID != corr {
		t.Fatalf("CorrelationID=%q err=%v, want %q", got.CorrelationID, err, corr)
	}
	if err := repo.SetCorrelationID(ctx, domain.ServiceRequestID(uuid.NewString()), corr); !errors.Is(err, servicerequestport.ErrNotFound) {
		t.Fatalf("SetCorrelationID(missing) err=%v, want ErrNotFound", err)
	}
}
