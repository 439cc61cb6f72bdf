package board_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gradjobs/internal/board"
	"gradjobs/internal/catalog"
	"gradjobs/internal/session"
)

const (
	testSID  = "6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"
	otherSID = "0a9b8c7d-6e5f-4a3b-9c2d-1e0f9a8b7c6d"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	board.NewHandler(newService(t, nil)).RegisterRoutes(mux)
	return mux
}

func do(mux *http.ServeMux, method, path, sid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if sid != "" {
		req.Header.Set(session.HeaderName, sid)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_StatusCodes(t *testing.T) {
	mux := newMux(t)

	cases := []struct {
		name   string
		method string
		path   string
		sid    string
		body   string
		want   int
	}{
		{"list jobs without session", http.MethodGet, "/api/jobs", "", "", http.StatusOK},
		{"filtered jobs need a session", http.MethodGet, "/api/jobs?filtered=1", "", "", http.StatusUnauthorized},
		{"malformed session header", http.MethodGet, "/api/applications", "not-a-session", "", http.StatusUnauthorized},
		{"job detail", http.MethodGet, "/api/jobs/" + lendable, "", "", http.StatusOK},
		{"unknown job", http.MethodGet, "/api/jobs/unknown-slug", "", "", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/api/jobs", "", "", http.StatusMethodNotAllowed},
		{"applications need a session", http.MethodGet, "/api/applications", "", "", http.StatusUnauthorized},
		{"track unknown slug", http.MethodPost, "/api/applications/unknown-slug/track", testSID, "", http.StatusNotFound},
		{"move untracked", http.MethodPost, "/api/applications/" + lendable + "/move", testSID, `{"status":"applied"}`, http.StatusNotFound},
		{"move without body", http.MethodPost, "/api/applications/" + lendable + "/move", testSID, "", http.StatusBadRequest},
		{"unknown action", http.MethodPost, "/api/applications/" + lendable + "/rate", testSID, "", http.StatusNotFound},
		{"bad path", http.MethodPost, "/api/applications/" + lendable, testSID, "", http.StatusNotFound},
		{"unknown segment", http.MethodPost, "/api/filters/segment", testSID, `{"segment":"law"}`, http.StatusBadRequest},
		{"tag outside segment", http.MethodPost, "/api/filters/tag", testSID, `{"tag":"technology-swe"}`, http.StatusBadRequest},
		{"unknown filter action", http.MethodPost, "/api/filters/everything", testSID, "", http.StatusNotFound},
		{"select all", http.MethodPost, "/api/filters/all", testSID, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(mux, tc.method, tc.path, tc.sid, tc.body)
			if rec.Code != tc.want {
				t.Errorf("%s %s = %d, want %d (body %s)", tc.method, tc.path, rec.Code, tc.want, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestHandler_TrackMoveList(t *testing.T) {
	mux := newMux(t)

	if rec := do(mux, http.MethodPost, "/api/applications/"+lendable+"/track", testSID, ""); rec.Code != http.StatusOK {
		t.Fatalf("track = %d %s", rec.Code, rec.Body)
	}
	rec := do(mux, http.MethodPost, "/api/applications/"+lendable+"/move", testSID, `{"status":"online test"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("move = %d %s", rec.Code, rec.Body)
	}
	var moved board.Application
	if err := json.NewDecoder(rec.Body).Decode(&moved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if moved.Status != "online test" || moved.DateApplied != nil {
		t.Errorf("moved = status %q dateApplied %v", moved.Status, moved.DateApplied)
	}

	rec = do(mux, http.MethodGet, "/api/applications", testSID, "")
	var apps []board.Application
	if err := json.NewDecoder(rec.Body).Decode(&apps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(apps) != 1 || apps[0].JobSlug != lendable || apps[0].Job == nil {
		t.Errorf("applications = %+v", apps)
	}

	// Another session sees nothing.
	rec = do(mux, http.MethodGet, "/api/applications", otherSID, "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("other session applications = %s", rec.Body)
	}
}

func TestHandler_SessionCookie(t *testing.T) {
	mux := newMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/applications/"+lendable+"/track", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "cookie-session"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("track with cookie = %d", rec.Code)
	}

	list := do(mux, http.MethodGet, "/api/applications", "cookie-session", "")
	if !strings.Contains(list.Body.String(), lendable) {
		t.Errorf("header lookup of cookie session = %s", list.Body)
	}
}

func TestHandler_FilteredJobs(t *testing.T) {
	mux := newMux(t)

	do(mux, http.MethodPost, "/api/filters/segment", testSID, `{"segment":"technology"}`)
	rec := do(mux, http.MethodGet, "/api/jobs?filtered=1", testSID, "")
	var jobs []catalog.JobPosting
	if err := json.NewDecoder(rec.Body).Decode(&jobs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("technology segment shows %d jobs, want 0", len(jobs))
	}

	rec = do(mux, http.MethodGet, "/api/jobs", testSID, "")
	jobs = nil
	json.NewDecoder(rec.Body).Decode(&jobs)
	if len(jobs) != 4 {
		t.Errorf("unfiltered catalog has %d jobs, want 4", len(jobs))
	}
}
