package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

type StatusUpdateRequest struct {
	WorkOrderID int
	NewStatus   string
}

var statusUpdateValidator = z.Struct(z.Shape{
	"WorkOrderID": z.Int().Required().GT(0),
	"NewStatus":   z.String().Required(),
})

type LimiterRequest struct {
	UserID int
	Rate   float64
	Burst  int
}

var limiterValidator = z.Struct(z.Shape{
	"UserID": z.Int().Required().GT(0),
	"Rate":   z.Float64().Required().GT(0),
	"Burst":  z.Int().Required().GT(0),
})

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGrpcServer)
}

func numberField(s *structpb.Struct, key string) float64 {
	return s.GetFields()[key].GetNumberValue()
}

// integerField reads a whole number, flagging fractions and infinities on verr.
func integerField(s *structpb.Struct, key string, verr *tracker.ValidationError) int {
	v := numberField(s, key)
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		verr.Add(key, "must be a whole number")
		return 0
	}
	return int(v)
}

func stringField(s *structpb.Struct, key string) string {
	return strings.TrimSpace(s.GetFields()[key].GetStringValue())
}

func succeeded(fields map[string]any) (*structpb.Struct, error) {
	out := map[string]any{"success": true, "message": "OK"}
	for k, v := range fields {
		out[k] = v
	}
	return structpb.NewStruct(out)
}

func failed(message string, fields map[string]string) (*structpb.Struct, error) {
	out := map[string]any{"success": false, "message": message}
	if len(fields) > 0 {
		detail := make(map[string]any, len(fields))
		for k, v := range fields {
			detail[k] = v
		}
		out["fields"] = detail
	}
	return structpb.NewStruct(out)
}

// issuesMessage names the fields zog rejected, using the wire names from names.
func issuesMessage(issues z.ZogIssueMap, names map[string]string) (*structpb.Struct, error) {
	normalize := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "_", "")) }

	verr := &tracker.ValidationError{}
	for key := range issues {
		if strings.HasPrefix(key, "$") {
			continue
		}
		name := key
		for field, wire := range names {
			if normalize(field) == normalize(key) {
				name = wire
				break
			}
		}
		verr.Add(name, "is missing or invalid")
	}
	if !verr.HasErrors() {
		verr.Add("request", "is invalid")
	}
	return failed(verr.Error(), verr.Fields)
}

// respondError reports engine errors in-band and hides anything unexpected behind a trace id.
func respondError(method string, err error) (*structpb.Struct, error) {
	var verr *tracker.ValidationError
	switch {
	case errors.As(err, &verr):
		return failed(verr.Error(), verr.Fields)
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, tracker.ErrConflict):
		return failed(err.Error(), nil)
	default:
		traceID := strings.SplitN(uuid.NewString(), "-", 2)[0]
		logger().Error("Call failed",
			zap.String("trace_id", traceID),
			zap.String("method", method),
			zap.Error(err))
		return nil, status.Errorf(codes.Internal, "internal error (trace id %s)", traceID)
	}
}

func workOrderFields(o *models.WorkOrder) map[string]any {
	var completed any
	if o.CompletedDate != nil {
		completed = models.FormatDate(*o.CompletedDate)
	}
	return map[string]any{
		"id":                 uint64(o.ID),
		"maintenance_log_id": uint64(o.MaintenanceLogID),
		"status":             string(o.Status),
		"assigned_to":        o.AssignedTo,
		"scheduled_date":     models.FormatDate(o.ScheduledDate),
		"completed_date":     completed,
		"priority":           string(o.Priority),
		"notes":              o.Notes,
		"is_critical":        o.IsCritical,
	}
}

func notificationFields(n models.Notification) map[string]any {
	var readAt any
	if n.ReadAt != nil {
		readAt = n.ReadAt.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"id":            uint64(n.ID),
		"work_order_id": uint64(n.WorkOrderID),
		"message":       n.Message,
		"is_read":       n.IsRead,
		"read_at":       readAt,
		"created_at":    n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *MaintenanceServer) UpdateWorkOrderStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	verr := &tracker.ValidationError{}
	input := StatusUpdateRequest{
		WorkOrderID: integerField(req, "work_order_id", verr),
		NewStatus:   stringField(req, "new_status"),
	}
	if verr.HasErrors() {
		return failed(verr.Error(), verr.Fields)
	}
	if issues := statusUpdateValidator.Validate(&input); issues != nil {
		return issuesMessage(issues, map[string]string{"WorkOrderID": "work_order_id", "NewStatus": "new_status"})
	}

	order, err := s.Tracker.WorkOrder.TransitionStatus(ctx, uint(input.WorkOrderID), models.WorkOrderStatus(input.NewStatus))
	if err != nil {
		return respondError(FullMethodUpdateWorkOrderStatus, err)
	}
	return succeeded(map[string]any{"work_order": workOrderFields(order)})
}

func (s *MaintenanceServer) AcknowledgeNotification(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	if req.GetValue() == 0 {
		verr := tracker.NewValidationError("id", "must be a positive integer")
		return failed(verr.Error(), verr.Fields)
	}

	n, err := s.Tracker.Notification.AcknowledgeNotification(ctx, uint(req.GetValue()))
	if err != nil {
		return respondError(FullMethodAcknowledgeNotification, err)
	}
	return succeeded(map[string]any{"notification": notificationFields(*n)})
}

func (s *MaintenanceServer) ListNotifications(ctx context.Context, req *wrapperspb.BoolValue) (*structpb.Struct, error) {
	notifications, err := s.Tracker.Notification.ListNotifications(ctx, req.GetValue())
	if err != nil {
		return respondError(FullMethodListNotifications, err)
	}
	return succeeded(map[string]any{
		"notifications": common.Mapper(notifications, func(n models.Notification) any {
			return notificationFields(n)
		}),
	})
}

func (s *MaintenanceServer) GetWorkOrderStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	counts, err := s.Tracker.Stats.StatusCounts(ctx)
	if err != nil {
		return respondError(FullMethodGetWorkOrderStats, err)
	}
	return succeeded(map[string]any{
		"total":       counts.Total,
		"pending":     counts.Pending,
		"in_progress": counts.InProgress,
		"completed":   counts.Completed,
	})
}

func (s *MaintenanceServer) GetCompletionTrend(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.Struct, error) {
	days := int(req.GetValue())
	if days == 0 {
		days = tracker.DefaultWindowDays
	}

	trend, err := s.Tracker.Stats.CompletionTrend(ctx, days)
	if err != nil {
		return respondError(FullMethodGetCompletionTrend, err)
	}
	return succeeded(map[string]any{
		"trend": common.Mapper(trend, func(p tracker.TrendPoint) any {
			return map[string]any{"date": p.Date, "count": p.Count}
		}),
	})
}

func (s *MaintenanceServer) SetUserLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	verr := &tracker.ValidationError{}
	input := LimiterRequest{
		UserID: integerField(req, "user_id", verr),
		Rate:   numberField(req, "rate"),
		Burst:  integerField(req, "burst", verr),
	}
	if verr.HasErrors() {
		return failed(verr.Error(), verr.Fields)
	}
	if issues := limiterValidator.Validate(&input); issues != nil {
		return issuesMessage(issues, map[string]string{"UserID": "user_id", "Rate": "rate", "Burst": "burst"})
	}

	if s.RateLimiterStore == nil {
		return failed("RateLimiterStore is not used. No effect.", nil)
	}

	s.RateLimiterStore.SetLimiter(userLimiterKey(uint(input.UserID)), rate.Limit(input.Rate), input.Burst)
	logger().Info("User limiter updated",
		zap.Int("user_id", input.UserID),
		zap.String("limiter", fmt.Sprintf("{\"rate\": %v, \"burst\": %v}", input.Rate, input.Burst)))
	return succeeded(nil)
}
