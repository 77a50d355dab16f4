package servicerequestrepo

import (
	"context"

	"github.com/wrp-ops/opsconsole/internal/domain"
)

// Repository stores submitted service requests.
//
// Result ordering expectations:
// - List returns newest first (CreatedAt descending), ties broken by ID ascending.
type Repository interface {
	Create(ctx context.Context, r domain.ServiceRequest) error
	GetByID(ctx context.Context, id domain.ServiceRequestID) (domain.ServiceRequest, error)
	// List returns at most limit requests; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.ServiceRequest, error)
	// SetCorrelationID records the id the request was forwarded upstream with.
	SetCorrelationID(ctx context.Context, id domain.ServiceRequestID, corr domain.CorrelationID) error
}
