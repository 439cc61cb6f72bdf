// Package web serves the server-rendered pages and their form endpoints.
//
// Pages:
//
//	GET  /, /tracker                   → today's roles and the filtered board
//	GET  /jobs/{slug}                  → job detail (404 page for unknown slugs)
//	GET  /applications                 → tracked jobs table
//	GET  /ask-ai, /cv-help             → placeholders
//	GET  /ws                           → live tracker events for this session
//
// Forms (POST, redirect back to the "return" field):
//
//	/tracker/segment|tag|group|all
//	/applications/{slug}/track|untrack|move|note
package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"gradjobs/internal/board"
	"gradjobs/internal/catalog"
	"gradjobs/internal/events"
	"gradjobs/internal/filter"
	"gradjobs/internal/session"
)

// Handler serves the HTML front end.
type Handler struct {
	svc          *board.Service
	hub          *events.Hub
	render       *Renderer
	secureCookie bool
}

// NewHandler returns a configured Handler. hub may be nil, in which case
// /ws is not mounted.
func NewHandler(svc *board.Service, hub *events.Hub, secureCookie bool) (*Handler, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, hub: hub, render: r, secureCookie: secureCookie}, nil
}

// RegisterRoutes mounts all pages and form endpoints on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/tracker", h.handleTracker)
	mux.HandleFunc("/tracker/", h.handleTrackerForm)
	mux.HandleFunc("/jobs/", h.handleJob)
	mux.HandleFunc("/applications", h.handleApplications)
	mux.HandleFunc("/applications/", h.handleApplicationForm)
	mux.HandleFunc("/ask-ai", h.placeholder("ask-ai", "Ask AI",
		"This tab will be for asking AI questions about roles, companies, and interview prep. UI only for now."))
	mux.HandleFunc("/cv-help", h.placeholder("cv-help", "CV Help",
		"This tab will handle CV feedback, bullets, and tailoring to roles. We'll build the tools here later."))
	if h.hub != nil {
		mux.HandleFunc("/ws", h.handleWS)
	}
}

// ─── View models ─────────────────────────────────────────────────────────────

type layoutData struct {
	Tab   string
	Title string
}

type segmentTab struct {
	Segment filter.Segment
	Label   string
	Active  bool
}

type groupView struct {
	filter.GroupState
	Expanded   bool
	ExpandHref string
	Tags       []tagView
}

type tagView struct {
	filter.Tag
	Checked bool
}

type trackerPage struct {
	layoutData
	Listing     board.Listing
	Segments    []segmentTab
	Groups      []groupView
	AllSelected bool
	MenuOpen    bool
	MenuHref    string
	Tracked     map[string]bool
	Return      string
}

type jobPage struct {
	layoutData
	Job     catalog.JobPosting
	Tracked bool
	Return  string
}

type applicationsPage struct {
	layoutData
	Applications []board.Application
	Return       string
}

type messagePage struct {
	layoutData
	Message string
}

// ─── Pages ───────────────────────────────────────────────────────────────────

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w, r)
		return
	}
	h.handleTracker(w, r)
}

// handleTracker handles GET / and GET /tracker
//
// Query parameters carry transient UI state: menu=1 opens the filter menu
// and open=<group>,<group> expands filter groups.
func (h *Handler) handleTracker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := session.Ensure(w, r, h.secureCookie)
	listing := h.svc.Listing(sid)

	q := r.URL.Query()
	menuOpen := q.Get("menu") == "1"
	expanded := map[string]bool{}
	for _, id := range strings.Split(q.Get("open"), ",") {
		if _, ok := filter.LookupGroup(id); ok {
			expanded[id] = true
		}
	}

	page := trackerPage{
		layoutData:  layoutData{Tab: "tracker", Title: "Application Tracker"},
		Listing:     listing,
		AllSelected: len(listing.Selected) == listing.TagCount,
		MenuOpen:    menuOpen,
		MenuHref:    trackerHref(!menuOpen, expanded),
		Tracked:     map[string]bool{},
		Return:      trackerHref(menuOpen, expanded),
	}
	for _, seg := range filter.Segments() {
		page.Segments = append(page.Segments, segmentTab{Segment: seg, Label: seg.Label(), Active: seg == listing.Segment})
	}
	selected := map[string]bool{}
	for _, id := range listing.Selected {
		selected[id] = true
	}
	for _, gs := range listing.Groups {
		gv := groupView{GroupState: gs, Expanded: expanded[gs.ID]}
		toggled := map[string]bool{}
		for id, on := range expanded {
			toggled[id] = on
		}
		toggled[gs.ID] = !gv.Expanded
		gv.ExpandHref = trackerHref(true, toggled)
		for _, t := range gs.Tags {
			gv.Tags = append(gv.Tags, tagView{Tag: t, Checked: selected[t.ID]})
		}
		page.Groups = append(page.Groups, gv)
	}
	for _, app := range h.svc.Applications(sid) {
		page.Tracked[app.JobSlug] = true
	}

	h.write(w, http.StatusOK, "tracker.html", page)
}

// handleJob handles GET /jobs/{slug}
func (h *Handler) handleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/jobs/"), "/")
	job, err := h.svc.Job(slug)
	if errors.Is(err, board.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	sid := session.Ensure(w, r, h.secureCookie)
	h.write(w, http.StatusOK, "job.html", jobPage{
		layoutData: layoutData{Tab: "tracker", Title: job.Role},
		Job:        job,
		Tracked:    h.svc.IsTracked(sid, slug),
		Return:     r.URL.RequestURI(),
	})
}

// handleApplications handles GET /applications
func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := session.Ensure(w, r, h.secureCookie)
	h.write(w, http.StatusOK, "applications.html", applicationsPage{
		layoutData:   layoutData{Tab: "applications", Title: "My applications"},
		Applications: h.svc.Applications(sid),
		Return:       r.URL.RequestURI(),
	})
}

func (h *Handler) placeholder(tab, title, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.write(w, http.StatusOK, "placeholder.html", messagePage{
			layoutData: layoutData{Tab: tab, Title: title},
			Message:    msg,
		})
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusNotFound, "notfound.html", messagePage{
		layoutData: layoutData{Tab: "tracker", Title: "Not found"},
		Message:    "We couldn't find that page.",
	})
}

// handleWS handles GET /ws
func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	sid := session.FromRequest(r)
	if sid == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	if err := h.hub.Serve(w, r, sid); err != nil {
		log.Printf("[web] %v", err)
	}
}

// ─── Forms ───────────────────────────────────────────────────────────────────

// handleTrackerForm handles POST /tracker/{segment|tag|group|all}
func (h *Handler) handleTrackerForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sid := session.Ensure(w, r, h.secureCookie)

	var err error
	switch action := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tracker/"), "/"); action {
	case "segment":
		err = h.svc.SetSegment(sid, r.FormValue("segment"))
	case "tag":
		err = h.svc.ToggleTag(sid, r.FormValue("tag"))
	case "group":
		err = h.svc.ToggleGroup(sid, r.FormValue("group"))
	case "all":
		h.svc.ToggleAll(sid)
	default:
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.formError(w, err)
		return
	}
	redirectBack(w, r, "/tracker")
}

// handleApplicationForm handles POST /applications/{slug}/{action}
func (h *Handler) handleApplicationForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	slug, action := parts[1], parts[2]
	sid := session.Ensure(w, r, h.secureCookie)

	var err error
	switch action {
	case "track":
		_, err = h.svc.Track(r.Context(), sid, slug)
	case "untrack":
		err = h.svc.Untrack(r.Context(), sid, slug)
	case "move":
		_, err = h.svc.MoveCard(r.Context(), sid, slug, r.FormValue("status"))
	case "note":
		_, err = h.svc.SetNotes(r.Context(), sid, slug, r.FormValue("notes"))
	default:
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.formError(w, err)
		return
	}
	redirectBack(w, r, "/applications")
}

func (h *Handler) formError(w http.ResponseWriter, err error) {
	var ve *board.ValidationError
	switch {
	case errors.Is(err, board.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &ve):
		http.Error(w, ve.Msg, http.StatusBadRequest)
	default:
		log.Printf("[web] form error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (h *Handler) write(w http.ResponseWriter, code int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := h.render.Render(w, page, data); err != nil {
		log.Printf("[web] render %s: %v", page, err)
	}
}

// redirectBack implements post/redirect/get. Only local paths are honoured.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	to := r.FormValue("return")
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		to = fallback
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func trackerHref(menu bool, expanded map[string]bool) string {
	q := url.Values{}
	if menu {
		q.Set("menu", "1")
	}
	var open []string
	for _, seg := range filter.Segments() {
		for _, g := range filter.GroupsFor(seg) {
			if expanded[g.ID] {
				open = append(open, g.ID)
			}
		}
	}
	if len(open) > 0 {
		q.Set("open", strings.Join(open, ","))
	}
	if len(q) == 0 {
		return "/tracker"
	}
	return "/tracker?" + q.Encode()
}
