package servicerequests

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wrp-ops/opsconsole/internal/domain"
	clockport "github.com/wrp-ops/opsconsole/internal/ports/out/clock"
	"github.com/wrp-ops/opsconsole/internal/ports/out/intake"
	"github.com/wrp-ops/opsconsole/internal/ports/out/servicerequestrepo"
)

type Service struct {
	repo servicerequestrepo.Repository
	fwd  intake.Forwarder
	clk  clockport.Clock
	log  *zap.Logger

	newID func() domain.ServiceRequestID

	// ListLimit bounds List result size.
	ListLimit int
}

func NewService(repo servicerequestrepo.Repository, fwd intake.Forwarder, clk clockport.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		fwd:  fwd,
		clk:  clk,
		log:  log,
		newID: func() domain.ServiceRequestID {
			return domain.ServiceRequestID(uuid.NewString())
		},
		ListLimit: 100,
	}
}

// Options returns the choices the portal form offers.
func Options() FormOptions {
	containers := make([]ContainerOption, 0, len(domain.Containers()))
	for _, c := range domain.Containers() {
		containers = append(containers, ContainerOption{Value: c, Label: domain.ContainerLabel(c)})
	}
	return FormOptions{
		ServiceTypes:  domain.ServiceTypes(),
		Containers:    containers,
		Windows:       domain.Windows(),
		DefaultType:   domain.ServiceRollOff,
		DefaultWindow: domain.WindowAM,
	}
}

// Submit validates and stores a request, then forwards it downstream.
// A forwarding failure is logged but does not undo the submission.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.ServiceRequest, error) {
	sr, err := s.validate(in)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	sr.ID = s.newID()
	sr.CreatedAt = s.clk.Now()
	sr.SubmittedBy = strings.TrimSpace(in.SubmittedBy)

	if err := s.repo.Create(ctx, sr); err != nil {
		if errors.Is(err, servicerequestrepo.ErrAlreadyExists) {
			return domain.ServiceRequest{}, &Error{
				Status:  409,
				Code:    "SERVICE_REQUEST_ALREADY_EXISTS",
				Message: "a service request with this id already exists",
			}
		}
		return domain.ServiceRequest{}, err
	}

	if s.fwd == nil {
		return sr, nil
	}
	corr, err := s.fwd.Forward(ctx, sr)
	if err != nil {
		s.log.Warn("service request forward failed",
			zap.String("service_request_id", string(sr.ID)),
			zap.String("correlation_id", string(corr)),
			zap.Error(err),
		)
	}
	if corr != "" {
		if err := s.repo.SetCorrelationID(ctx, sr.ID, corr); err != nil {
			return domain.ServiceRequest{}, err
		}
		sr.CorrelationID = corr
	}
	return sr, nil
}

func (s *Service) Get(ctx context.Context, id domain.ServiceRequestID) (domain.ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicerequestrepo.ErrNotFound) {
			return domain.ServiceRequest{}, &Error{
				Status:  404,
				Code:    "SERVICE_REQUEST_NOT_FOUND",
				Message: "service request not found",
			}
		}
		return domain.ServiceRequest{}, err
	}
	return sr, nil
}

// List returns the most recent requests, newest first.
func (s *Service) List(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.repo.List(ctx, s.ListLimit)
}

func (s *Service) validate(in SubmitInput) (domain.ServiceRequest, error) {
	details := map[string]any{}

	typ := domain.ServiceType(strings.TrimSpace(in.Type))
	if typ == "" {
		typ = domain.ServiceRollOff
	} else if !slices.Contains(domain.ServiceTypes(), typ) {
		details["type"] = "must be one of rolloff, commercial, residential, special"
	}

	window := domain.Window(strings.TrimSpace(in.Window))
	if window == "" {
		window = domain.WindowAM
	} else if !slices.Contains(domain.Windows(), window) {
		details["window"] = "must be one of am, mid, pm"
	}

	var container *domain.Container
	if in.Container != nil && strings.TrimSpace(*in.Container) != "" {
		c := domain.Container(strings.TrimSpace(*in.Container))
		if domain.ContainerLabel(c) == "" {
			details["container"] = "unknown container size"
		} else {
			container = &c
		}
	}

	name := domain.NormalizeHumanName(in.BusinessName)
	if name == "" {
		details["businessName"] = "required"
	}
	addr := domain.NormalizeHumanName(in.Address)
	if addr == "" {
		details["address"] = "required"
	}

	if len(details) > 0 {
		return domain.ServiceRequest{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid service request",
			Details: details,
		}
	}
	return domain.ServiceRequest{
		Type:         typ,
		Container:    container,
		BusinessName: name,
		Address:      addr,
		Window:       window,
	}, nil
}
