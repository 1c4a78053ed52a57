package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/hrconsole/internal/common"
)

const (
	BasePath     = "/api/v1"
	maxBodyBytes = 1 << 20
)

// Handler builds the routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(bodyLimit(maxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	hrOnly := requireRole(common.RoleHR)

	r.Route(BasePath, func(r chi.Router) {
		r.Route("/Auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)
			r.Post("/refresh", s.refresh)
			r.Post("/logout", s.logout)
			r.With(s.authenticate).Get("/me", s.me)
		})

		r.Route("/Opening", func(r chi.Router) {
			r.Get("/", s.listOpenings)
			r.Get("/{id}", s.getOpening)
			r.Group(func(r chi.Router) {
				r.Use(s.authenticate, hrOnly)
				r.Post("/", s.createOpening)
				r.Patch("/{id}", s.updateOpening)
				r.Delete("/{id}", s.deleteOpening)
				r.Get("/{id}/Candidates", s.listCandidates)
			})
		})

		r.Route("/Employee", func(r chi.Router) {
			r.Use(s.authenticate)
			r.With(hrOnly).Get("/", s.listEmployees)
			r.With(hrOnly).Post("/", s.createEmployee)
			r.With(requireRole(common.RoleHR, common.RoleEmployee)).Get("/{id}", s.getEmployee)
			r.With(hrOnly).Patch("/{id}", s.updateEmployee)
		})

		r.With(s.authenticate, hrOnly).Get("/Candidate/cv/{fileName}", s.cvLink)
	})

	return otelhttp.NewHandler(r, "hrapi")
}
