package catalog

import (
	"context"

	"github.com/wrp-ops/opsconsole/internal/domain"
)

// Dashboard is the data behind the operations dashboard.
type Dashboard struct {
	Routes []domain.RouteRow
	Queue  []domain.QueueItem
}

// Fleet is the data behind the fleet overview.
type Fleet struct {
	Totals  domain.FleetTotals
	Metrics []domain.FleetMetric
}

// Source provides the reference data each console section renders.
// Implementations return fresh slices; callers may modify what they get.
type Source interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	Customers(ctx context.Context) ([]domain.CustomerRow, error)
	Drivers(ctx context.Context) ([]domain.DriverRow, error)
	Fleet(ctx context.Context) (Fleet, error)
	DisposalSites(ctx context.Context) ([]domain.DisposalSite, error)
	RoutePlan(ctx context.Context) (domain.RoutePlan, error)
	Schedule(ctx context.Context) ([]domain.ScheduleDay, error)
	TruckPositions(ctx context.Context) ([]domain.TruckPosition, error)
	ServiceQueue(ctx context.Context) ([]domain.ServiceRequestCard, error)
	BillingLines(ctx context.Context) ([]domain.BillingLine, error)
}
