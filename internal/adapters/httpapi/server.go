package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wrp-ops/opsconsole/internal/app/ops"
	"github.com/wrp-ops/opsconsole/internal/app/servicerequests"
	"github.com/wrp-ops/opsconsole/internal/domain"
	"github.com/wrp-ops/opsconsole/internal/ports/out/idempotency"
)

// SessionStore is the process-wide identity cell the console runs under.
type SessionStore interface {
	Current() (domain.Identity, bool)
	SetRole(role domain.Role)
	Begin(id domain.Identity)
	End()
}

// Server holds the handlers behind NewRouter.
type Server struct {
	Session  SessionStore
	Ops      *ops.Service
	Requests *servicerequests.Service
	Idem     idempotency.Store
	Log      *zap.Logger
}

func NewServer(sess SessionStore, opsSvc *ops.Service, requests *servicerequests.Service, idem idempotency.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Session:  sess,
		Ops:      opsSvc,
		Requests: requests,
		Idem:     idem,
		Log:      log,
	}
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.Session.Current()
	if !ok {
		writeError(w, r, http.StatusNotFound, "NO_SESSION", "no identity is active", nil)
		return
	}
	writeJSON(w, http.StatusOK, identityFromDomain(id))
}

func (s *Server) BeginSession(w http.ResponseWriter, r *http.Request) {
	var body BeginSessionRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Id) == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid session", map[string]any{"id": "required"})
		return
	}
	s.Session.Begin(domain.Identity{ID: body.Id, Name: body.Name, Role: domain.Role(body.Role)})
	s.GetSession(w, r)
}

func (s *Server) EndSession(w http.ResponseWriter, _ *http.Request) {
	s.Session.End()
	w.WriteHeader(http.StatusNoContent)
}

// SetSessionRole switches the active identity's role. Any string is accepted.
func (s *Server) SetSessionRole(w http.ResponseWriter, r *http.Request) {
	var body SetRoleRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Role == nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid role change", map[string]any{"role": "required"})
		return
	}
	s.Session.SetRole(domain.Role(*body.Role))
	s.GetSession(w, r)
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.Ops.Dashboard(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardFromDomain(d))
}

func (s *Server) GetCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ops.Customers(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customersFromDomain(rows))
}

func (s *Server) GetDrivers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ops.Drivers(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, driversFromDomain(rows))
}

func (s *Server) GetFleet(w http.ResponseWriter, r *http.Request) {
	f, err := s.Ops.Fleet(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fleetFromDomain(f))
}

func (s *Server) GetDisposalSites(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ops.DisposalSites(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, disposalSitesFromDomain(rows))
}

func (s *Server) GetRoutePlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.Ops.RoutePlan(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routePlanFromDomain(p))
}

func (s *Server) OptimizeRoutePlan(w http.ResponseWriter, r *http.Request) {
	p, err := s.Ops.Optimize(r.Context())
	switch {
	case errors.Is(err, ops.ErrOptimizerUnavailable):
		writeNotImplemented(w, r, "route optimization")
	case err != nil:
		s.internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, routePlanFromDomain(p))
	}
}

func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	days, err := s.Ops.Schedule(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleFromDomain(days))
}

func (s *Server) GetTruckPositions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ops.TruckPositions(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, truckPositionsFromDomain(rows))
}

func (s *Server) RefreshTruckPositions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Ops.RefreshPositions(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, truckPositionsFromDomain(rows))
}

func (s *Server) GetServiceQueue(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Ops.ServiceQueue(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceQueueFromDomain(cards))
}

func (s *Server) GetBilling(w http.ResponseWriter, r *http.Request) {
	v, err := s.Ops.Billing(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, billingFromDomain(v))
}

func (s *Server) GetPortalOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, portalOptionsFromApp(servicerequests.Options()))
}

func (s *Server) ListServiceRequests(w http.ResponseWriter, r *http.Request) {
	rs, err := s.Requests.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceRequestsFromDomain(rs))
}

func (s *Server) GetServiceRequest(w http.ResponseWriter, r *http.Request) {
	sr, err := s.Requests.Get(r.Context(), domain.ServiceRequestID(chi.URLParam(r, "requestId")))
	if err != nil {
		s.appError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ServiceRequestResponse{Request: serviceRequestFromDomain(sr)})
}

// SubmitServiceRequest accepts the customer portal form.
//
// With an Idempotency-Key header, a retry with the same body replays the stored
// response and a retry with a different body is rejected with 409.
func (s *Server) SubmitServiceRequest(w http.ResponseWriter, r *http.Request) {
	var body SubmitServiceRequestRequest
	if !decodeBody(w, r, &body) {
		return
	}

	var submittedBy string
	if id, ok := IdentityFromContext(r.Context()); ok {
		submittedBy = id.ID
	}

	idem, done := s.beginIdempotent(w, r, submittedBy, "/ops/customer-portal/requests", body)
	if done {
		return
	}

	sr, err := s.Requests.Submit(r.Context(), servicerequests.SubmitInput{
		Type:         body.Type,
		Container:    body.Container,
		BusinessName: body.BusinessName,
		Address:      body.Address,
		Window:       body.Window,
		SubmittedBy:  submittedBy,
	})
	if err != nil {
		s.appError(w, r, err)
		return
	}

	b, err := json.Marshal(ServiceRequestResponse{Request: serviceRequestFromDomain(sr)})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.finishIdempotent(r.Context(), idem, http.StatusCreated, b)
	writeRawJSON(w, http.StatusCreated, b)
}

func (s *Server) appError(w http.ResponseWriter, r *http.Request, err error) {
	if ae := (*servicerequests.Error)(nil); errors.As(err, &ae) {
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	s.internalError(w, r, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "missing request body", nil)
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", map[string]any{"body": err.Error()})
		return false
	}
	return true
}
