package grpcserver

import "google.golang.org/protobuf/types/known/timestamppb"

type Empty struct{}

type HelpfulLinkProto struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type JobProto struct {
	Slug            string              `json:"slug"`
	Company         string              `json:"company"`
	Role            string              `json:"role"`
	Location        string              `json:"location"`
	Industry        string              `json:"industry"`
	Salary          string              `json:"salary"`
	Posted          string              `json:"posted"`
	ReleaseDate     string              `json:"releaseDate"`
	Deadline        string              `json:"deadline,omitempty"`
	Description     string              `json:"description,omitempty"`
	RoleSummaryHtml string              `json:"roleSummaryHtml,omitempty"`
	ApplyUrl        string              `json:"applyUrl,omitempty"`
	HelpfulLinks    []*HelpfulLinkProto `json:"helpfulLinks,omitempty"`
	FilterTags      []string            `json:"filterTags"`
	LogoRef         string              `json:"logoRef,omitempty"`
}

type ListJobsRequest struct {
	// Filtered applies the caller's segment and tag selection.
	Filtered bool `json:"filtered"`
}

type ListJobsResponse struct {
	Jobs []*JobProto `json:"jobs"`
}

type GetJobRequest struct {
	Slug string `json:"slug"`
}

type ApplicationProto struct {
	Id          string                 `json:"id"`
	JobSlug     string                 `json:"jobSlug"`
	Status      string                 `json:"status"`
	StatusLabel string                 `json:"statusLabel"`
	CreatedAt   *timestamppb.Timestamp `json:"createdAt"`
	DateApplied *timestamppb.Timestamp `json:"dateApplied,omitempty"`
	Notes       string                 `json:"notes,omitempty"`
	// Job is nil when the slug is no longer in the catalog.
	Job *JobProto `json:"job,omitempty"`
}

type ListApplicationsRequest struct{}

type ListApplicationsResponse struct {
	Applications []*ApplicationProto `json:"applications"`
}

type TrackRequest struct {
	Slug string `json:"slug"`
}

type UntrackRequest struct {
	Slug string `json:"slug"`
}

type MoveCardRequest struct {
	Slug      string `json:"slug"`
	NewStatus string `json:"newStatus"`
}

type AddNoteRequest struct {
	Slug string `json:"slug"`
	Note string `json:"note"`
}
