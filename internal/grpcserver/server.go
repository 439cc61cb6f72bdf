// Package grpcserver implements the gradjobs.Board gRPC server.
//
// It delegates all business logic to board.Service and handles
// only the gRPC transport concerns: metadata extraction, error mapping,
// and type conversion between the domain model and wire messages.
package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"gradjobs/internal/board"
	"gradjobs/internal/catalog"
	"gradjobs/internal/session"
)

// Server implements BoardServer.
type Server struct {
	svc *board.Service
}

var _ BoardServer = (*Server)(nil)

// NewServer constructs a gRPC Server backed by the given board.Service.
func NewServer(svc *board.Service) *Server {
	return &Server{svc: svc}
}

// ─── RPC implementations ─────────────────────────────────────────────────────

// ListJobs returns the catalog, or the caller's filtered board.
func (s *Server) ListJobs(ctx context.Context, req *ListJobsRequest) (*ListJobsResponse, error) {
	jobs := s.svc.Jobs()
	if req.Filtered {
		sid, err := sessionIDFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		jobs = s.svc.Listing(sid).All
	}

	protos := make([]*JobProto, 0, len(jobs))
	for i := range jobs {
		protos = append(protos, jobToProto(&jobs[i]))
	}
	return &ListJobsResponse{Jobs: protos}, nil
}

// GetJob returns one posting.
func (s *Server) GetJob(ctx context.Context, req *GetJobRequest) (*JobProto, error) {
	job, err := s.svc.Job(req.Slug)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return jobToProto(&job), nil
}

// ListApplications returns the caller's tracked jobs, most recent first.
func (s *Server) ListApplications(ctx context.Context, req *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	apps := s.svc.Applications(sid)
	protos := make([]*ApplicationProto, 0, len(apps))
	for i := range apps {
		protos = append(protos, appToProto(&apps[i]))
	}
	return &ListApplicationsResponse{Applications: protos}, nil
}

// Track adds a job to the caller's tracker.
func (s *Server) Track(ctx context.Context, req *TrackRequest) (*ApplicationProto, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	app, err := s.svc.Track(ctx, sid, req.Slug)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return appToProto(app), nil
}

// Untrack removes a job from the caller's tracker.
func (s *Server) Untrack(ctx context.Context, req *UntrackRequest) (*Empty, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Untrack(ctx, sid, req.Slug); err != nil {
		return nil, toGRPCError(err)
	}
	return &Empty{}, nil
}

// MoveCard sets the status of a tracked job.
func (s *Server) MoveCard(ctx context.Context, req *MoveCardRequest) (*ApplicationProto, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	app, err := s.svc.MoveCard(ctx, sid, req.Slug, req.NewStatus)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return appToProto(app), nil
}

// AddNote replaces the note on a tracked job.
func (s *Server) AddNote(ctx context.Context, req *AddNoteRequest) (*ApplicationProto, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	app, err := s.svc.SetNotes(ctx, sid, req.Slug, req.Note)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return appToProto(app), nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// sessionIDFromCtx extracts the x-session-id value from gRPC metadata.
func sessionIDFromCtx(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get(session.HeaderName)
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing x-session-id metadata")
	}
	if !session.ValidID(vals[0]) {
		return "", status.Error(codes.Unauthenticated, "malformed x-session-id metadata")
	}
	return vals[0], nil
}

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	if errors.Is(err, board.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	var ve *board.ValidationError
	if errors.As(err, &ve) {
		return status.Error(codes.InvalidArgument, ve.Msg)
	}
	return status.Error(codes.Internal, "internal server error")
}

func jobToProto(j *catalog.JobPosting) *JobProto {
	links := make([]*HelpfulLinkProto, 0, len(j.HelpfulLinks))
	for _, l := range j.HelpfulLinks {
		links = append(links, &HelpfulLinkProto{Label: l.Label, Href: l.Href})
	}
	return &JobProto{
		Slug:            j.Slug,
		Company:         j.Company,
		Role:            j.Role,
		Location:        j.Location,
		Industry:        j.Industry,
		Salary:          j.Salary,
		Posted:          j.PostedLabel,
		ReleaseDate:     j.ReleaseDate.String(),
		Deadline:        j.Deadline,
		Description:     j.Description,
		RoleSummaryHtml: j.RoleSummaryHTML,
		ApplyUrl:        j.ApplyURL,
		HelpfulLinks:    links,
		FilterTags:      j.FilterTags,
		LogoRef:         j.LogoRef,
	}
}

// appToProto converts a board.Application to its wire form. DateApplied and
// Job are optional and may be nil.
func appToProto(a *board.Application) *ApplicationProto {
	p := &ApplicationProto{
		Id:          a.ID,
		JobSlug:     a.JobSlug,
		Status:      string(a.Status),
		StatusLabel: a.Status.Label(),
		CreatedAt:   timestamppb.New(a.CreatedAt),
		Notes:       a.Notes,
	}
	if a.DateApplied != nil {
		p.DateApplied = timestamppb.New(*a.DateApplied)
	}
	if a.Job != nil {
		p.Job = jobToProto(a.Job)
	}
	return p
}
