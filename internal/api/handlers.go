// Package api exposes the HTTP surface of the roster dashboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"example.com/deliveries/internal/auth"
	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/session"
	"example.com/deliveries/internal/store"
	"example.com/deliveries/internal/view"
)

// Handler coordinates HTTP requests with the session controller.
type Handler struct {
	controller *session.Controller
}

// NewHandler builds a Handler around the session controller.
func NewHandler(controller *session.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/roster", h.roster)
	mux.HandleFunc("/v1/roster/refresh", h.refresh)
	mux.HandleFunc("/v1/roster/people", h.people)
	mux.HandleFunc("/v1/roster/people/", h.personSubtree)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) roster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireRead(w, r) {
		return
	}

	projection, err := h.controller.Matrix(r.URL.Query().Get("person"), r.URL.Query().Get("activity"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatrixResponse(projection, h.controller.Unsaved()))
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireRead(w, r) {
		return
	}

	if err := h.controller.Refresh(r.Context()); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (h *Handler) people(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireWrite(w, r) {
		return
	}

	var req AddPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := h.controller.AddPerson(r.Context(), req.Name, req.Started); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"person": domain.NormalizeName(req.Name),
		"status": "saved",
	})
}

// personSubtree dispatches /v1/roster/people/{name}[/statement|/deliveries/{activity}].
func (h *Handler) personSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/roster/people/")
	segments := strings.SplitN(rest, "/", 3)

	name, err := url.PathUnescape(segments[0])
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing person name")
		return
	}

	switch {
	case len(segments) == 1:
		h.removePerson(w, r, name)
	case len(segments) == 2 && segments[1] == "statement":
		h.statement(w, r, name)
	case len(segments) == 3 && segments[1] == "deliveries":
		activity, err := url.PathUnescape(segments[2])
		if err != nil || activity == "" {
			writeError(w, http.StatusBadRequest, "invalid_request", "missing activity name")
			return
		}
		h.setDelivered(w, r, name, activity)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown resource")
	}
}

func (h *Handler) removePerson(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireWrite(w, r) {
		return
	}

	if err := h.controller.RemovePerson(r.Context(), name); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"person": domain.NormalizeName(name),
		"status": "removed",
	})
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireRead(w, r) {
		return
	}

	text, err := h.controller.Statement(name)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *Handler) setDelivered(w http.ResponseWriter, r *http.Request, name, activity string) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !h.requireWrite(w, r) {
		return
	}

	var req SetDeliveredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	changed, err := h.controller.SetDelivered(r.Context(), name, activity, *req.Delivered)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SetDeliveredResponse{
		Person:    domain.NormalizeName(name),
		Activity:  activity,
		Delivered: *req.Delivered,
		Changed:   changed,
	})
}

func (h *Handler) requireRead(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(auth.ScopeRosterRead) && !claims.HasScope(auth.ScopeRosterWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope roster:read required")
		return false
	}
	return true
}

func (h *Handler) requireWrite(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(auth.ScopeRosterWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope roster:write required")
		return false
	}
	return true
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Store
// failures keep the in-memory edit; the payload says so, and the explicit
// refresh command is the retry path.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrEmptyName),
		errors.Is(err, session.ErrMalformedDate),
		errors.Is(err, session.ErrFutureDate):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrDuplicatePerson):
		writeError(w, http.StatusConflict, "duplicate_person", err.Error())
	case errors.Is(err, domain.ErrPersonNotFound), errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, session.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "session_not_ready", err.Error())
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable",
			"change kept in memory but not saved; retry via refresh or repeat the edit")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

// AddPersonRequest is the payload for POST /v1/roster/people.
type AddPersonRequest struct {
	Name    string `json:"name"`
	Started string `json:"started,omitempty"`
}

// SetDeliveredRequest is the payload for PUT deliveries.
type SetDeliveredRequest struct {
	Delivered *bool `json:"delivered"`
}

// Validate ensures request correctness.
func (r SetDeliveredRequest) Validate() error {
	if r.Delivered == nil {
		return errors.New("delivered is required")
	}
	return nil
}

// SetDeliveredResponse reports whether the toggle actually changed anything,
// so the UI can skip a redundant re-render.
type SetDeliveredResponse struct {
	Person    string `json:"person"`
	Activity  string `json:"activity"`
	Delivered bool   `json:"delivered"`
	Changed   bool   `json:"changed"`
}

// MatrixRow is one person's row in the pivoted view.
type MatrixRow struct {
	Person   string          `json:"person"`
	Started  string          `json:"started"`
	Cells    map[string]bool `json:"cells"`
	Complete bool            `json:"complete"`
}

// MatrixResponse is the filtered person × activity grid. Empty and
// NoMatches are distinct: the first means the table holds no data at all,
// the second that the filters excluded everything.
type MatrixResponse struct {
	Activities []string    `json:"activities"`
	Rows       []MatrixRow `json:"rows"`
	Empty      bool        `json:"empty"`
	NoMatches  bool        `json:"no_matches"`
	Unsaved    bool        `json:"unsaved"`
}

func toMatrixResponse(p view.Projection, unsaved bool) MatrixResponse {
	resp := MatrixResponse{
		Activities: p.Activities,
		Rows:       make([]MatrixRow, 0, len(p.People)),
		Empty:      p.Empty(),
		NoMatches:  p.NoMatches(),
		Unsaved:    unsaved,
	}
	for _, person := range p.People {
		resp.Rows = append(resp.Rows, MatrixRow{
			Person:   person,
			Started:  p.Started[person],
			Cells:    p.Cells[person],
			Complete: p.Complete(person),
		})
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
