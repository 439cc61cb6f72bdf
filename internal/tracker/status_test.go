package tracker_test

import (
	"testing"

	"gradjobs/internal/tracker"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{
		"interested", "applied", "online test", "video interview",
		"first interview", "further interview", "final stage", "offer", "rejected",
	}
	for _, s := range valid {
		got, err := tracker.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"hired", "UNKNOWN", "interview"} {
		if _, err := tracker.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	if _, err := tracker.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

// ── Statuses ───────────────────────────────────────────────────────────────

func TestStatuses_PipelineOrder(t *testing.T) {
	got := tracker.Statuses()
	if len(got) != 9 {
		t.Fatalf("len(Statuses()) = %d, want 9", len(got))
	}
	if got[0] != tracker.StatusInterested {
		t.Errorf("first status = %q, want interested", got[0])
	}
	if got[len(got)-1] != tracker.StatusRejected {
		t.Errorf("last status = %q, want rejected", got[len(got)-1])
	}
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	a := tracker.Statuses()
	a[0] = "mutated"
	if b := tracker.Statuses(); b[0] != tracker.StatusInterested {
		t.Errorf("Statuses() shares its backing array: got %q", b[0])
	}
}

// ── Label ──────────────────────────────────────────────────────────────────

func TestLabel(t *testing.T) {
	cases := []struct {
		in   tracker.Status
		want string
	}{
		{tracker.StatusInterested, "Interested"},
		{tracker.StatusOnlineTest, "Online Test"},
		{tracker.StatusFurtherInterview, "Further Interview"},
		{tracker.StatusOffer, "Offer"},
		{tracker.Status("an offer"), "AN Offer"},
	}
	for _, c := range cases {
		if got := c.in.Label(); got != c.want {
			t.Errorf("%q.Label() = %q, want %q", c.in, got, c.want)
		}
	}
}

// ── date side effects ──────────────────────────────────────────────────────

func TestDateAppliedRules(t *testing.T) {
	for _, s := range tracker.Statuses() {
		if got, want := tracker.SetsDateApplied(s), s == tracker.StatusApplied; got != want {
			t.Errorf("SetsDateApplied(%s) = %v, want %v", s, got, want)
		}
		if got, want := tracker.ClearsDateApplied(s), s == tracker.StatusInterested; got != want {
			t.Errorf("ClearsDateApplied(%s) = %v, want %v", s, got, want)
		}
	}
}
