package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls MaintenanceService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithToken attaches a session token to outgoing calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, metadataKeyAuthorization, "Bearer "+token)
}

func (c *Client) UpdateWorkOrderStatus(ctx context.Context, workOrderID uint, newStatus string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{
		"work_order_id": uint64(workOrderID),
		"new_status":    newStatus,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodUpdateWorkOrderStatus, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AcknowledgeNotification(ctx context.Context, id uint, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodAcknowledgeNotification, wrapperspb.UInt64(uint64(id)), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodListNotifications, wrapperspb.Bool(unreadOnly), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWorkOrderStats(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodGetWorkOrderStats, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCompletionTrend(ctx context.Context, days int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodGetCompletionTrend, wrapperspb.Int32(int32(days)), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetUserLimiter(ctx context.Context, userID uint, limit float64, burst int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{
		"user_id": uint64(userID),
		"rate":    limit,
		"burst":   burst,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethodSetUserLimiter, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
