// Package v1alpha1 serves the arena over gRPC. Messages are google.protobuf.Struct
// documents, so the service needs no generated code on either side.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "arena.api.v1alpha1.ArenaService"

// Method names of the arena service
const (
	MethodListOpponents   = "ListOpponents"
	MethodCreateSession   = "CreateSession"
	MethodGetSession      = "GetSession"
	MethodEndSession      = "EndSession"
	MethodChooseOpponent  = "ChooseOpponent"
	MethodStartBattle     = "StartBattle"
	MethodProgressBattle  = "ProgressBattle"
	MethodResetBattle     = "ResetBattle"
	MethodSetAutoProgress = "SetAutoProgress"
	MethodSetSpeed        = "SetSpeed"
	MethodDeliverRewards  = "DeliverRewards"
	MethodWatchBattle     = "WatchBattle"
)

// FullMethod returns the full gRPC method path, as seen by interceptors
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ArenaServiceServer is the server API for the arena service
type ArenaServiceServer interface {
	ListOpponents(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChooseOpponent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProgressBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAutoProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetSpeed(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeliverRewards(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchBattle(*structpb.Struct, grpc.ServerStreamingServer[structpb.Struct]) error
}

type unaryMethod func(ArenaServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ArenaServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ArenaServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchBattleHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ArenaServiceServer).WatchBattle(in, &grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

// ServiceDesc describes the arena service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ArenaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListOpponents, ArenaServiceServer.ListOpponents),
		unary(MethodCreateSession, ArenaServiceServer.CreateSession),
		unary(MethodGetSession, ArenaServiceServer.GetSession),
		unary(MethodEndSession, ArenaServiceServer.EndSession),
		unary(MethodChooseOpponent, ArenaServiceServer.ChooseOpponent),
		unary(MethodStartBattle, ArenaServiceServer.StartBattle),
		unary(MethodProgressBattle, ArenaServiceServer.ProgressBattle),
		unary(MethodResetBattle, ArenaServiceServer.ResetBattle),
		unary(MethodSetAutoProgress, ArenaServiceServer.SetAutoProgress),
		unary(MethodSetSpeed, ArenaServiceServer.SetSpeed),
		unary(MethodDeliverRewards, ArenaServiceServer.DeliverRewards),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    MethodWatchBattle,
			Handler:       watchBattleHandler,
			ServerStreams: true,
		},
	},
	Metadata: "arena/api/v1alpha1/arena.proto",
}

// RegisterArenaServiceServer registers srv with the grpc server
func RegisterArenaServiceServer(s grpc.ServiceRegistrar, srv ArenaServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ArenaServiceClient calls the arena service over a client connection
type ArenaServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewArenaServiceClient creates a client for the arena service
func NewArenaServiceClient(cc grpc.ClientConnInterface) *ArenaServiceClient {
	return &ArenaServiceClient{cc: cc}
}

// Call invokes a unary method by name
func (c *ArenaServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchBattle opens the update stream of a session
func (c *ArenaServiceClient) WatchBattle(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], FullMethod(MethodWatchBattle), opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
