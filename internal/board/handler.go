package board

// JSON API over Service.
//
// Every route resolves the caller's session from the x-session-id header or
// the session cookie.
//
// Routes:
//
//	GET  /api/jobs                          → catalog (?filtered=1 applies the session's filters)
//	GET  /api/jobs/{slug}                   → one posting
//	GET  /api/applications                  → session's tracked jobs
//	POST /api/applications/{slug}/track     → add to tracker
//	POST /api/applications/{slug}/untrack   → remove from tracker
//	POST /api/applications/{slug}/move      → set status
//	POST /api/applications/{slug}/note      → replace notes
//	GET  /api/filters                       → session's filter listing
//	POST /api/filters/{segment|tag|group|all|none|toggle}

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gradjobs/internal/session"
)

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler serves the JSON API.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the JSON API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/jobs", h.handleJobs)
	mux.HandleFunc("/api/jobs/", h.handleJob)
	mux.HandleFunc("/api/applications", h.handleApplications)
	mux.HandleFunc("/api/applications/", h.handleApplicationAction)
	mux.HandleFunc("/api/filters", h.handleFilters)
	mux.HandleFunc("/api/filters/", h.handleFilterAction)
}

// ─── Route dispatch ──────────────────────────────────────────────────────────

// handleJobs handles GET /api/jobs
func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("filtered") != "1" {
		jsonOK(w, h.svc.Jobs())
		return
	}
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}
	jsonOK(w, h.svc.Listing(sid).All)
}

// handleJob handles GET /api/jobs/{slug}
func (h *Handler) handleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/jobs/"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	job, err := h.svc.Job(slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, job)
}

// handleApplications handles GET /api/applications
func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}
	jsonOK(w, h.svc.Applications(sid))
}

// handleApplicationAction handles POST /api/applications/{slug}/{action}
func (h *Handler) handleApplicationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse /api/applications/{slug}/{action}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	slug, action := parts[2], parts[3]

	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch action {
	case "track":
		h.track(w, r, sid, slug)
	case "untrack":
		h.untrack(w, r, sid, slug)
	case "move":
		h.moveCard(w, r, sid, slug)
	case "note":
		h.setNotes(w, r, sid, slug)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
	}
}

// handleFilters handles GET /api/filters
func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}
	jsonOK(w, h.svc.Listing(sid))
}

// handleFilterAction handles POST /api/filters/{action}
func (h *Handler) handleFilterAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/filters/"), "/")

	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var err error
	switch action {
	case "segment":
		var body struct {
			Segment string `json:"segment"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil || body.Segment == "" {
			jsonError(w, "body must contain segment", http.StatusBadRequest)
			return
		}
		err = h.svc.SetSegment(sid, body.Segment)
	case "tag":
		var body struct {
			Tag string `json:"tag"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil || body.Tag == "" {
			jsonError(w, "body must contain tag", http.StatusBadRequest)
			return
		}
		err = h.svc.ToggleTag(sid, body.Tag)
	case "group":
		var body struct {
			Group string `json:"group"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil || body.Group == "" {
			jsonError(w, "body must contain group", http.StatusBadRequest)
			return
		}
		err = h.svc.ToggleGroup(sid, body.Group)
	case "all":
		h.svc.SelectAll(sid)
	case "none":
		h.svc.DeselectAll(sid)
	case "toggle":
		h.svc.ToggleAll(sid)
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, h.svc.Listing(sid))
}

// ─── Individual handlers ─────────────────────────────────────────────────────

func (h *Handler) track(w http.ResponseWriter, r *http.Request, sid, slug string) {
	app, err := h.svc.Track(r.Context(), sid, slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, app)
}

func (h *Handler) untrack(w http.ResponseWriter, r *http.Request, sid, slug string) {
	if err := h.svc.Untrack(r.Context(), sid, slug); err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handler) moveCard(w http.ResponseWriter, r *http.Request, sid, slug string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "body must contain status", http.StatusBadRequest)
		return
	}
	app, err := h.svc.MoveCard(r.Context(), sid, slug, body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, app)
}

func (h *Handler) setNotes(w http.ResponseWriter, r *http.Request, sid, slug string) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	app, err := h.svc.SetNotes(r.Context(), sid, slug, body.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	jsonOK(w, app)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid := session.FromRequest(r)
	if sid == "" {
		jsonError(w, "missing x-session-id header or session cookie", http.StatusUnauthorized)
		return "", false
	}
	return sid, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &ve):
		jsonError(w, ve.Msg, http.StatusBadRequest)
	default:
		log.Printf("[api] internal error: %v", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
