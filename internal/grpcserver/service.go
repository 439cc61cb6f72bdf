package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "gradjobs.Board"

// BoardServer is the server API for the gradjobs.Board service.
type BoardServer interface {
	ListJobs(context.Context, *ListJobsRequest) (*ListJobsResponse, error)
	GetJob(context.Context, *GetJobRequest) (*JobProto, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	Track(context.Context, *TrackRequest) (*ApplicationProto, error)
	Untrack(context.Context, *UntrackRequest) (*Empty, error)
	MoveCard(context.Context, *MoveCardRequest) (*ApplicationProto, error)
	AddNote(context.Context, *AddNoteRequest) (*ApplicationProto, error)
}

// RegisterBoardServer registers srv on s.
func RegisterBoardServer(s grpc.ServiceRegistrar, srv BoardServer) {
	s.RegisterService(&BoardServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodDesc's handler signature.
func unary[Req, Resp any](name string, call func(BoardServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BoardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BoardServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BoardServiceDesc describes gradjobs.Board for grpc.Server.
var BoardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListJobs", BoardServer.ListJobs),
		unary("GetJob", BoardServer.GetJob),
		unary("ListApplications", BoardServer.ListApplications),
		unary("Track", BoardServer.Track),
		unary("Untrack", BoardServer.Untrack),
		unary("MoveCard", BoardServer.MoveCard),
		unary("AddNote", BoardServer.AddNote),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gradjobs/board",
}

// ─── Client ──────────────────────────────────────────────────────────────────

// Client calls gradjobs.Board over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) ListJobs(ctx context.Context, in *ListJobsRequest, opts ...grpc.CallOption) (*ListJobsResponse, error) {
	out := new(ListJobsResponse)
	if err := c.invoke(ctx, "ListJobs", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, in *GetJobRequest, opts ...grpc.CallOption) (*JobProto, error) {
	out := new(JobProto)
	if err := c.invoke(ctx, "GetJob", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListApplications(ctx context.Context, in *ListApplicationsRequest, opts ...grpc.CallOption) (*ListApplicationsResponse, error) {
	out := new(ListApplicationsResponse)
	if err := c.invoke(ctx, "ListApplications", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Track(ctx context.Context, in *TrackRequest, opts ...grpc.CallOption) (*ApplicationProto, error) {
	out := new(ApplicationProto)
	if err := c.invoke(ctx, "Track", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Untrack(ctx context.Context, in *UntrackRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, "Untrack", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MoveCard(ctx context.Context, in *MoveCardRequest, opts ...grpc.CallOption) (*ApplicationProto, error) {
	out := new(ApplicationProto)
	if err := c.invoke(ctx, "MoveCard", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddNote(ctx context.Context, in *AddNoteRequest, opts ...grpc.CallOption) (*ApplicationProto, error) {
	out := new(ApplicationProto)
	if err := c.invoke(ctx, "AddNote", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
