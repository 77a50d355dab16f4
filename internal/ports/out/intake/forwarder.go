package intake

import (
	"context"

	"github.com/wrp-ops/opsconsole/internal/domain"
)

// Forwarder hands an accepted service request to the downstream intake system.
// It returns the correlation id the request was sent with, when one was used.
type Forwarder interface {
	Forward(ctx context.Context, r domain.ServiceRequest) (domain.CorrelationID, error)
}
