package servicerequestrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wrp-ops/opsconsole/internal/adapters/postgres"
	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

// Repo is a Postgres implementation of servicerequestrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectColumns = `
	id, service_type, container, business_name, address,
	pickup_window, submitted_by, correlation_id, created_at
`

func (r *Repo) Create(ctx context.Context, sr domain.ServiceRequest) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(sr.ID))
	if err != nil {
		return fmt.Errorf("invalid service request id: %w", err)
	}
	var container *string
	if sr.Container != nil {
		c := string(*sr.Container)
		container = &c
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO service_requests (
			id,
			service_type,
			container,
			business_name,
			address,
			pickup_window,
			submitted_by,
			correlation_id,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		id,
		string(sr.Type),
		container,
		sr.BusinessName,
		sr.Address,
		string(sr.Window),
		sr.SubmittedBy,
		string(sr.CorrelationID),
		sr.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return servicerequestrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ServiceRequestID) (domain.ServiceRequest, error) {
	if r.pool == nil {
		return domain.ServiceRequest{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		// Non-UUID ids can never have been stored.
		return domain.ServiceRequest{}, servicerequestrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM service_requests WHERE id = $1`, uid)
	sr, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ServiceRequest{}, servicerequestrepo.ErrNotFound
		}
		return domain.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *Repo) List(ctx context.Context, limit int) ([]domain.ServiceRequest, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	q := `SELECT ` + selectColumns + ` FROM service_requests ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ServiceRequest, 0)
	for rows.Next() {
		sr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *Repo) SetCorrelationID(ctx context.Context, id domain.ServiceRequestID, corr domain.CorrelationID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return servicerequestrepo.ErrNotFound
	}
	ct, err := r.pool.Exec(ctx, `UPDATE service_requests SET correlation_id = $2 WHERE id = $1`, uid, string(corr))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return servicerequestrepo.ErrNotFound
	}
	return nil
}

func scanRequest(row pgx.Row) (domain.ServiceRequest, error) {
	var (
		id        uuid.UUID
		typ       string
		container *string
		window    string
		corr      string
		sr        domain.ServiceRequest
	)
	if err := row.Scan(
		&id,
		&typ,
		&container,
		&sr.BusinessName,
		&sr.Address,
		&window,
		&sr.SubmittedBy,
		&corr,
		&sr.CreatedAt,
	); err != nil {
		return domain.ServiceRequest{}, err
	}
	sr.ID = domain.ServiceRequestID(id.String())
	sr.Type = domain.ServiceType(typ)
	sr.Window = domain.Window(window)
	sr.CorrelationID = domain.CorrelationID(corr)
	sr.CreatedAt = sr.CreatedAt.UTC()
	if container != nil {
		c := domain.Container(*container)
		sr.Container = &c
	}
	return sr, nil
}
