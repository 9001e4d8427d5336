// Package grpc exposes the engine's status, notification and stats operations over gRPC. Messages
// are protobuf well-known types, so the service descriptor is written out by hand instead of
// generated from a .proto file.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/limiter"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

const ServiceName = "maintenance.v1.MaintenanceService"

const (
	FullMethodUpdateWorkOrderStatus   = "/" + ServiceName + "/UpdateWorkOrderStatus"
	FullMethodAcknowledgeNotification = "/" + ServiceName + "/AcknowledgeNotification"
	FullMethodListNotifications       = "/" + ServiceName + "/ListNotifications"
	FullMethodGetWorkOrderStats       = "/" + ServiceName + "/GetWorkOrderStats"
	FullMethodGetCompletionTrend      = "/" + ServiceName + "/GetCompletionTrend"
	FullMethodSetUserLimiter          = "/" + ServiceName + "/SetUserLimiter"
)

// MutatingMethods are the calls that go through the per-user rate limiter.
var MutatingMethods = []string{
	FullMethodUpdateWorkOrderStatus,
	FullMethodAcknowledgeNotification,
}

type MaintenanceServiceServer interface {
	UpdateWorkOrderStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AcknowledgeNotification(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	ListNotifications(context.Context, *wrapperspb.BoolValue) (*structpb.Struct, error)
	GetWorkOrderStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetCompletionTrend(context.Context, *wrapperspb.Int32Value) (*structpb.Struct, error)
	SetUserLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type MaintenanceServer struct {
	Tracker          *tracker.Tracker
	Sessions         *auth.SessionManager
	RateLimiterStore *limiter.Store
}

func (s *MaintenanceServer) CheckUserLimiter(key string) bool {
	if s.RateLimiterStore == nil {
		return true
	}
	return s.RateLimiterStore.Allow(key)
}

// unaryHandler adapts one typed method to the shape grpc.MethodDesc expects, running the
// server's interceptor chain around it.
func unaryHandler[Req any](
	fullMethod string,
	call func(MaintenanceServiceServer, context.Context, *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MaintenanceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MaintenanceServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var MaintenanceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MaintenanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "UpdateWorkOrderStatus",
			Handler: unaryHandler(FullMethodUpdateWorkOrderStatus,
				func(s MaintenanceServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
					return s.UpdateWorkOrderStatus(ctx, in)
				}),
		},
		{
			MethodName: "AcknowledgeNotification",
			Handler: unaryHandler(FullMethodAcknowledgeNotification,
				func(s MaintenanceServiceServer, ctx context.Context, in *wrapperspb.UInt64Value) (any, error) {
					return s.AcknowledgeNotification(ctx, in)
				}),
		},
		{
			MethodName: "ListNotifications",
			Handler: unaryHandler(FullMethodListNotifications,
				func(s MaintenanceServiceServer, ctx context.Context, in *wrapperspb.BoolValue) (any, error) {
					return s.ListNotifications(ctx, in)
				}),
		},
		{
			MethodName: "GetWorkOrderStats",
			Handler: unaryHandler(FullMethodGetWorkOrderStats,
				func(s MaintenanceServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
					return s.GetWorkOrderStats(ctx, in)
				}),
		},
		{
			MethodName: "GetCompletionTrend",
			Handler: unaryHandler(FullMethodGetCompletionTrend,
				func(s MaintenanceServiceServer, ctx context.Context, in *wrapperspb.Int32Value) (any, error) {
					return s.GetCompletionTrend(ctx, in)
				}),
		},
		{
			MethodName: "SetUserLimiter",
			Handler: unaryHandler(FullMethodSetUserLimiter,
				func(s MaintenanceServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
					return s.SetUserLimiter(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "maintenance/v1/maintenance.proto",
}

func RegisterMaintenanceServiceServer(registrar grpc.ServiceRegistrar, srv MaintenanceServiceServer) {
	registrar.RegisterService(&MaintenanceServiceDesc, srv)
}

// NewServer builds a grpc.Server with authentication and rate limiting installed and s registered.
func NewServer(s *MaintenanceServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.CreateAuthInterceptor(),
		s.CreateRateLimitInterceptor(MutatingMethods),
	))
	server := grpc.NewServer(opts...)
	RegisterMaintenanceServiceServer(server, s)
	return server
}
