package httpserver

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/hrconsole/internal/common"
	"github.com/dmitrijs2005/hrconsole/internal/server/models"
)

func badRequest(msg string) error {
	return &models.ValidationError{Msg: msg}
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, badRequest("id must be a positive integer")
	}
	return id, nil
}

// --- auth ---

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := decodeJSON(r, &in, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	pair, err := s.users.Login(r.Context(), in.Email, in.Password)
	s.metrics.recordAuth(r.Context(), "login", err)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if err := decodeJSON(r, &in, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	pair, err := s.users.Register(r.Context(), in)
	s.metrics.recordAuth(r.Context(), "register", err)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshRequest
	if err := decodeJSON(r, &in, true); err != nil {
		s.respondErr(w, r, err)
		return
	}
	pair, err := s.users.RefreshToken(r.Context(), in.RefreshToken)
	s.metrics.recordAuth(r.Context(), "refresh", err)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// logout revokes the posted refresh token. The bearer token is not required,
// so a console with an expired access token can still sign out.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshRequest
	if err := decodeJSON(r, &in, true); err != nil {
		s.respondErr(w, r, err)
		return
	}
	err := s.users.Logout(r.Context(), in.RefreshToken)
	s.metrics.recordAuth(r.Context(), "logout", err)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	p, err := s.users.Me(r.Context(), claims.Subject)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- openings ---

func (s *Server) listOpenings(w http.ResponseWriter, r *http.Request) {
	list, err := s.hr.ListOpenings(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getOpening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	o, err := s.hr.GetOpening(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) createOpening(w http.ResponseWriter, r *http.Request) {
	var in models.OpeningInput
	if err := decodeJSON(r, &in, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	o, err := s.hr.CreateOpening(r.Context(), in)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) updateOpening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	var patch models.OpeningPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	o, err := s.hr.UpdateOpening(r.Context(), id, patch)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) deleteOpening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	if err := s.hr.DeleteOpening(r.Context(), id); err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	list, err := s.hr.ListCandidates(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// --- employees ---

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := s.hr.ListEmployees(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getEmployee serves HR any record and everybody else only their own.
func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	claims, _ := ClaimsFromContext(r.Context())
	if !slices.Contains(claims.Roles, common.RoleHR) {
		p, err := s.users.Me(r.Context(), claims.Subject)
		if err != nil {
			s.respondErr(w, r, err)
			return
		}
		if p.BusinessEntityID == nil || *p.BusinessEntityID != id {
			s.respondErr(w, r, common.ErrorForbidden)
			return
		}
	}

	e, err := s.hr.GetEmployee(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.Employee
	if err := decodeJSON(r, &in, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	e, err := s.hr.CreateEmployee(r.Context(), in)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	var patch models.EmployeePatch
	if err := decodeJSON(r, &patch, false); err != nil {
		s.respondErr(w, r, err)
		return
	}
	e, err := s.hr.UpdateEmployee(r.Context(), id, patch)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// --- candidates ---

func (s *Server) cvLink(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "fileName"))
	if err != nil {
		s.respondErr(w, r, badRequest("invalid file name"))
		return
	}
	link, err := s.cvs.PresignedURL(r.Context(), name)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}
