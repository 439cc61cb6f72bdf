// Package tracker holds the per-session application tracker.
//
// Pipeline (display order only, any status may follow any other):
//
//	interested ──► applied ──► online test ──► video interview ──► first interview
//	    ──► further interview ──► final stage ──► offer
//	                                         └──► rejected
package tracker

import (
	"fmt"
	"strings"
)

// Status is an application status. The string value is the wire value used by
// the JSON and gRPC APIs and by the HTML forms.
type Status string

const (
	StatusInterested       Status = "interested"
	StatusApplied          Status = "applied"
	StatusOnlineTest       Status = "online test"
	StatusVideoInterview   Status = "video interview"
	StatusFirstInterview   Status = "first interview"
	StatusFurtherInterview Status = "further interview"
	StatusFinalStage       Status = "final stage"
	StatusOffer            Status = "offer"
	StatusRejected         Status = "rejected"
)

var pipeline = []Status{
	StatusInterested,
	StatusApplied,
	StatusOnlineTest,
	StatusVideoInterview,
	StatusFirstInterview,
	StatusFurtherInterview,
	StatusFinalStage,
	StatusOffer,
	StatusRejected,
}

// Statuses returns the pipeline in display order.
func Statuses() []Status {
	out := make([]Status, len(pipeline))
	copy(out, pipeline)
	return out
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values. Matching is exact and case-sensitive.
func ParseStatus(s string) (Status, error) {
	for _, st := range pipeline {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Label renders the status for a select box: words longer than two letters
// are capitalised, shorter ones upper-cased.
func (s Status) Label() string {
	words := strings.Split(string(s), " ")
	for i, w := range words {
		if len(w) > 2 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}

// ClearsDateApplied reports whether moving to s resets the application date.
func ClearsDateApplied(s Status) bool { return s == StatusInterested }

// SetsDateApplied reports whether moving to s stamps the application date.
func SetsDateApplied(s Status) bool { return s == StatusApplied }
