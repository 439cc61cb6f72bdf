package session

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	// CookieName is the browser cookie carrying the session ID.
	CookieName = "gradjobs_session"
	// HeaderName lets API clients pass the session ID explicitly.
	HeaderName = "x-session-id"
)

// ValidID reports whether id has the shape NewID issues. Anything else is
// never looked up, so clients cannot mint sessions with arbitrary keys.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// FromRequest returns the session ID from the x-session-id header, falling
// back to the session cookie. Malformed values are ignored. It returns ""
// when no valid ID is present.
func FromRequest(r *http.Request) string {
	if id := r.Header.Get(HeaderName); ValidID(id) {
		return id
	}
	if c, err := r.Cookie(CookieName); err == nil && ValidID(c.Value) {
		return c.Value
	}
	return ""
}

// Ensure returns the request's session ID, issuing a new cookie when the
// visitor has none or sent a malformed one.
func Ensure(w http.ResponseWriter, r *http.Request, secure bool) string {
	if id := FromRequest(r); id != "" {
		return id
	}
	id := NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
