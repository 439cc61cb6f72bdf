package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gradjobs/internal/board"
	"gradjobs/internal/catalog"
	"gradjobs/internal/session"
	"gradjobs/internal/web"
)

const (
	lendable = "lendable-graduate-analyst-london"
	testSID  = "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"
)

func newServer(t *testing.T) (*http.ServeMux, *board.Service) {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	svc := board.NewService(cat, session.NewRegistry(), nil)
	svc.SetClock(func() time.Time { return time.Date(2025, time.September, 5, 9, 0, 0, 0, time.Local) })

	h, err := web.NewHandler(svc, nil, false)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux, svc
}

func get(mux *http.ServeMux, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func post(mux *http.ServeMux, path, sid string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	mux, _ := newServer(t)

	cases := []struct {
		path     string
		want     int
		contains string
	}{
		{"/", http.StatusOK, "Application Tracker"},
		{"/tracker", http.StatusOK, "New today"},
		{"/tracker", http.StatusOK, "Opened 20 Nov 2025"},
		{"/jobs/" + lendable, http.StatusOK, "Graduate Analyst"},
		{"/jobs/unknown-slug", http.StatusNotFound, "404"},
		{"/nowhere", http.StatusNotFound, "404"},
		{"/applications", http.StatusOK, "You haven't added any jobs"},
		{"/ask-ai", http.StatusOK, "UI only for now"},
		{"/cv-help", http.StatusOK, "CV feedback"},
	}
	for _, tc := range cases {
		rec := get(mux, tc.path, testSID)
		if rec.Code != tc.want {
			t.Errorf("GET %s = %d, want %d", tc.path, rec.Code, tc.want)
		}
		if !strings.Contains(rec.Body.String(), tc.contains) {
			t.Errorf("GET %s body does not contain %q", tc.path, tc.contains)
		}
	}
}

func TestFirstVisitIssuesCookie(t *testing.T) {
	mux, _ := newServer(t)

	rec := get(mux, "/tracker", "")
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			found = c
		}
	}
	if found == nil || found.Value == "" {
		t.Fatalf("no session cookie issued")
	}
	if !found.HttpOnly || found.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags: HttpOnly=%v SameSite=%v", found.HttpOnly, found.SameSite)
	}

	rec = get(mux, "/tracker", found.Value)
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("returning visitor got a new cookie")
	}
}

func TestMalformedCookieIsReplaced(t *testing.T) {
	mux, svc := newServer(t)
	before := svc.Sessions().Len()

	rec := get(mux, "/tracker", "../../etc/passwd")
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			found = c
		}
	}
	if found == nil || !session.ValidID(found.Value) {
		t.Fatalf("malformed cookie was not replaced: %+v", found)
	}
	if _, ok := svc.Sessions().Lookup("../../etc/passwd"); ok {
		t.Error("malformed cookie value became a session")
	}
	if n := svc.Sessions().Len(); n != before+1 {
		t.Errorf("sessions = %d, want %d", n, before+1)
	}
}

func TestTrackFormRedirectsBack(t *testing.T) {
	mux, svc := newServer(t)

	rec := post(mux, "/applications/"+lendable+"/track", testSID, url.Values{"return": {"/jobs/" + lendable}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("track = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/jobs/"+lendable {
		t.Errorf("Location = %q", loc)
	}
	if !svc.IsTracked(testSID, lendable) {
		t.Errorf("job not tracked")
	}

	body := get(mux, "/jobs/"+lendable, testSID).Body.String()
	if !strings.Contains(body, "Tracked (click to remove)") {
		t.Errorf("detail page does not show tracked state")
	}
}

func TestRedirectRejectsForeignTargets(t *testing.T) {
	mux, _ := newServer(t)

	for _, target := range []string{"https://evil.example", "//evil.example", ""} {
		rec := post(mux, "/applications/"+lendable+"/track", testSID, url.Values{"return": {target}})
		if loc := rec.Header().Get("Location"); loc != "/applications" {
			t.Errorf("return=%q redirected to %q", target, loc)
		}
	}
}

func TestApplicationsTable(t *testing.T) {
	mux, svc := newServer(t)
	ctx := context.Background()
	svc.Track(ctx, testSID, lendable)
	svc.Track(ctx, testSID, "mckinsey-business-analyst-2026-london")

	rec := post(mux, "/applications/"+lendable+"/move", testSID, url.Values{"status": {"applied"}, "return": {"/applications"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("move = %d", rec.Code)
	}

	body := get(mux, "/applications", testSID).Body.String()
	for _, want := range []string{"2 tracked", "Lendable", "McKinsey", "Online Test", "Further Interview", "—"} {
		if !strings.Contains(body, want) {
			t.Errorf("applications page missing %q", want)
		}
	}
	// Most recent first: McKinsey was tracked last.
	if strings.Index(body, "McKinsey") > strings.Index(body, "Lendable") {
		t.Errorf("applications not most-recent-first")
	}

	rec = post(mux, "/applications/"+lendable+"/move", testSID, url.Values{"status": {"hired"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status = %d, want 400", rec.Code)
	}
}

func TestSegmentFormResetsSelection(t *testing.T) {
	mux, svc := newServer(t)

	post(mux, "/tracker/segment", testSID, url.Values{"segment": {"technology"}, "return": {"/tracker"}})
	l := svc.Listing(testSID)
	if l.Segment != "technology" || len(l.Selected) != 7 {
		t.Errorf("after segment switch: %s with %d tags", l.Segment, len(l.Selected))
	}

	body := get(mux, "/tracker?menu=1", testSID).Body.String()
	if !strings.Contains(body, "Software Engineering (SWE)") {
		t.Errorf("flattened technology tags not rendered")
	}
	if !strings.Contains(body, "No roles match the selected sectors.") {
		t.Errorf("technology segment should show no roles")
	}
}

func TestFilterMenuExpansionIsPerRequest(t *testing.T) {
	mux, _ := newServer(t)

	closed := get(mux, "/tracker?menu=1", testSID).Body.String()
	if strings.Contains(closed, "Investment Banking (IB)") {
		t.Errorf("finance group expanded without open=finance")
	}
	open := get(mux, "/tracker?menu=1&open=finance", testSID).Body.String()
	if !strings.Contains(open, "Investment Banking (IB)") {
		t.Errorf("finance group not expanded with open=finance")
	}
	// Unknown group IDs are ignored rather than echoed into links.
	if strings.Contains(get(mux, "/tracker?menu=1&open=finance,bogus", testSID).Body.String(), "bogus") {
		t.Errorf("unknown group ID carried into the page")
	}
	// Another request without the parameter is collapsed again.
	if strings.Contains(get(mux, "/tracker?menu=1", testSID).Body.String(), "Investment Banking (IB)") {
		t.Errorf("expansion leaked between requests")
	}
}

func TestUnknownForms(t *testing.T) {
	mux, _ := newServer(t)

	if rec := post(mux, "/tracker/everything", testSID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown tracker form = %d", rec.Code)
	}
	if rec := post(mux, "/applications/unknown-slug/track", testSID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("track unknown slug = %d", rec.Code)
	}
	if rec := post(mux, "/tracker/tag", testSID, url.Values{"tag": {"technology-swe"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("tag outside segment = %d", rec.Code)
	}
}
