package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wrp-ops/opsconsole/internal/app/access"
	"github.com/wrp-ops/opsconsole/internal/platform/logging"
)

type RouterOptions struct {
	// Routes guards the /ops tree. Nil means access.DefaultRules.
	Routes *access.RouteTable
	Logger *zap.Logger
}

// NewRouter constructs the console HTTP router.
//
// Every /ops path sits behind the route table's ops gate; sections with their own
// allow-list get a second gate. Unknown paths redirect to the console home.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	routes := opts.Routes
	if routes == nil {
		var err error
		if routes, err = access.NewRouteTable(access.DefaultRules()); err != nil {
			panic(err)
		}
	}
	home := routes.Ops().Fallback()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.AccessLog(opts.Logger))
	r.Use(middleware.Recoverer)

	r.NotFound(redirectTo(home))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", redirectTo(home))

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Post("/", s.BeginSession)
		r.Delete("/", s.EndSession)
		r.Put("/role", s.SetSessionRole)
	})

	r.Route("/ops", func(r chi.Router) {
		r.Use(requireAccess(routes.Ops(), s.Session))
		r.Get("/", redirectTo(access.SectionDashboard.Path()))

		section := func(sec access.Section, fn func(chi.Router)) {
			r.Route("/"+string(sec), func(r chi.Router) {
				if g := routes.GateFor(sec); g != nil {
					r.Use(requireAccess(g, s.Session))
				}
				fn(r)
			})
		}

		section(access.SectionDashboard, func(r chi.Router) { r.Get("/", s.GetDashboard) })
		section(access.SectionCustomers, func(r chi.Router) { r.Get("/", s.GetCustomers) })
		section(access.SectionDrivers, func(r chi.Router) { r.Get("/", s.GetDrivers) })
		section(access.SectionFleet, func(r chi.Router) { r.Get("/", s.GetFleet) })
		section(access.SectionDisposal, func(r chi.Router) { r.Get("/", s.GetDisposalSites) })
		section(access.SectionRoutePlanning, func(r chi.Router) {
			r.Get("/", s.GetRoutePlan)
			r.Post("/optimize", s.OptimizeRoutePlan)
		})
		section(access.SectionServiceQueue, func(r chi.Router) { r.Get("/", s.GetServiceQueue) })
		section(access.SectionSchedule, func(r chi.Router) { r.Get("/", s.GetSchedule) })
		section(access.SectionLiveTracking, func(r chi.Router) {
			r.Get("/", s.GetTruckPositions)
			r.Post("/refresh", s.RefreshTruckPositions)
		})
		section(access.SectionBilling, func(r chi.Router) { r.Get("/", s.GetBilling) })
		section(access.SectionCustomerPortal, func(r chi.Router) {
			r.Get("/", s.GetPortalOptions)
			r.Get("/requests", s.ListServiceRequests)
			r.Post("/requests", s.SubmitServiceRequest)
			r.Get("/requests/{requestId}", s.GetServiceRequest)
		})
	})

	return r
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}
