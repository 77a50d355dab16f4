// Package ops serves the read-only views of the operations console.
package ops

import (
	"context"
	"errors"

	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/catalog"
)

// ErrOptimizerUnavailable is returned by Optimize: no route optimizer is wired in.
var ErrOptimizerUnavailable = errors.New("route optimizer unavailable")

// BillingView is the billing table plus its grand total.
type BillingView struct {
	Lines []domain.BillingLine
	Total int
}

type Service struct {
	src catalog.Source
}

func NewService(src catalog.Source) *Service {
	return &Service{src: src}
}

func (s *Service) Dashboard(ctx context.Context) (catalog.Dashboard, error) {
	return s.src.Dashboard(ctx)
}

func (s *Service) Customers(ctx context.Context) ([]domain.CustomerRow, error) {
	return s.src.Customers(ctx)
}

func (s *Service) Drivers(ctx context.Context) ([]domain.DriverRow, error) {
	return s.src.Drivers(ctx)
}

func (s *Service) Fleet(ctx context.Context) (catalog.Fleet, error) {
	return s.src.Fleet(ctx)
}

func (s *Service) DisposalSites(ctx context.Context) ([]domain.DisposalSite, error) {
	return s.src.DisposalSites(ctx)
}

func (s *Service) RoutePlan(ctx context.Context) (domain.RoutePlan, error) {
	return s.src.RoutePlan(ctx)
}

// Optimize would reorder the planned stops. The plan is returned untouched along
// with ErrOptimizerUnavailable so callers can still render it.
func (s *Service) Optimize(ctx context.Context) (domain.RoutePlan, error) {
	plan, err := s.src.RoutePlan(ctx)
	if err != nil {
		return domain.RoutePlan{}, err
	}
	return plan, ErrOptimizerUnavailable
}

func (s *Service) Schedule(ctx context.Context) ([]domain.ScheduleDay, error) {
	return s.src.Schedule(ctx)
}

func (s *Service) TruckPositions(ctx context.Context) ([]domain.TruckPosition, error) {
	return s.src.TruckPositions(ctx)
}

// RefreshPositions re-reads truck positions. With a static source this yields an
// equal but freshly allocated list.
func (s *Service) RefreshPositions(ctx context.Context) ([]domain.TruckPosition, error) {
	rows, err := s.src.TruckPositions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TruckPosition, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *Service) ServiceQueue(ctx context.Context) ([]domain.ServiceRequestCard, error) {
	return s.src.ServiceQueue(ctx)
}

func (s *Service) Billing(ctx context.Context) (BillingView, error) {
	lines, err := s.src.BillingLines(ctx)
	if err != nil {
		return BillingView{}, err
	}
	total := 0
	for _, l := range lines {
		total += l.Total
	}
	return BillingView{Lines: lines, Total: total}, nil
}
