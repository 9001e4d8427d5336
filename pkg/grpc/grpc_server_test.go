package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	"liyu1981.xyz/maintenance-tracker/pkg/limiter"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	_ "liyu1981.xyz/maintenance-tracker/pkg/testing"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker/mocks"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client  *Client
	tracker *tracker.Tracker
	user    *models.User
	ctx     context.Context
}

func startTestServerWithLimiter(t *testing.T, limiterStore *limiter.Store) *testEnv {
	t.Helper()
	listener := bufconn.Listen(bufSize)

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)

	trackerInstance := tracker.New(dbInstance)
	sessions := auth.NewSessionManager("test-secret", time.Hour)

	server := NewServer(&MaintenanceServer{
		Tracker:          trackerInstance,
		Sessions:         sessions,
		RateLimiterStore: limiterStore,
	})

	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
		_ = dbInstance.Close()
	})

	user, err := trackerInstance.User.RegisterUser(context.Background(), tracker.UserInput{
		Username: "operator",
		Email:    "operator@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	token, _, err := sessions.Issue(user)
	require.NoError(t, err)

	return &testEnv{
		client:  NewClient(conn),
		tracker: trackerInstance,
		user:    user,
		ctx:     WithToken(context.Background(), token),
	}
}

func startTestServer(t *testing.T) *testEnv {
	return startTestServerWithLimiter(t, nil)
}

func (env *testEnv) seedWorkOrder(t *testing.T, critical bool) *models.WorkOrder {
	t.Helper()
	ctx := context.Background()
	date, _ := models.ParseDate("2024-01-01")
	entry, err := env.tracker.Log.CreateLog(ctx, tracker.LogInput{
		Date:             date,
		LotNumber:        "LOT001",
		ContactDetails:   "ops@example.com",
		MaintenanceClass: models.MaintenanceClassSupplier,
		Description:      "Replace cabin air filter",
		Allocation:       "Hangar C",
	})
	require.NoError(t, err)

	scheduled, _ := models.ParseDate("2024-03-20")
	order, err := env.tracker.WorkOrder.CreateWorkOrder(ctx, entry.ID, tracker.WorkOrderInput{
		Status:        models.StatusPending,
		AssignedTo:    "Bob",
		ScheduledDate: scheduled,
		Priority:      models.PriorityLow,
		IsCritical:    critical,
	})
	require.NoError(t, err)
	return order
}

func success(resp *structpb.Struct) bool {
	return resp.GetFields()["success"].GetBoolValue()
}

func message(resp *structpb.Struct) string {
	return resp.GetFields()["message"].GetStringValue()
}

func TestAuthInterceptor(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	{
		_, err := env.client.GetWorkOrderStats(context.Background())
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	{
		_, err := env.client.GetWorkOrderStats(WithToken(context.Background(), "not-a-token"))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}

	{
		resp, err := env.client.GetWorkOrderStats(env.ctx)
		require.NoError(t, err)
		assert.True(t, success(resp))
	}
}

func TestUpdateWorkOrderStatus(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	order := env.seedWorkOrder(t, true)

	{
		resp, err := env.client.UpdateWorkOrderStatus(env.ctx, order.ID, string(models.StatusCompleted))
		require.NoError(t, err)
		require.True(t, success(resp), message(resp))

		wo := resp.GetFields()["work_order"].GetStructValue().GetFields()
		assert.Equal(t, "Completed", wo["status"].GetStringValue())
		assert.NotEmpty(t, wo["completed_date"].GetStringValue())

		notifications, err := env.tracker.Notification.ListNotifications(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		assert.Equal(t,
			fmt.Sprintf("Critical work order #%d is now Completed: Replace cabin air filter", order.ID),
			notifications[0].Message)
	}

	{
		// leaving Completed clears the completion date
		resp, err := env.client.UpdateWorkOrderStatus(env.ctx, order.ID, string(models.StatusPending))
		require.NoError(t, err)
		require.True(t, success(resp))
		wo := resp.GetFields()["work_order"].GetStructValue().GetFields()
		_, isNull := wo["completed_date"].GetKind().(*structpb.Value_NullValue)
		assert.True(t, isNull)
	}

	{
		resp, err := env.client.UpdateWorkOrderStatus(env.ctx, order.ID, "Cancelled")
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Contains(t, message(resp), "validation error")
		assert.Contains(t, resp.GetFields()["fields"].GetStructValue().GetFields(), "new_status")
	}

	{
		resp, err := env.client.UpdateWorkOrderStatus(env.ctx, 999, string(models.StatusCompleted))
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Equal(t, "work order 999 not found", message(resp))
	}

	{
		// missing id fails validation before reaching the engine
		resp, err := env.client.UpdateWorkOrderStatus(env.ctx, 0, string(models.StatusCompleted))
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Contains(t, resp.GetFields()["fields"].GetStructValue().GetFields(), "work_order_id")
	}
}

func TestNotifications(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	env.seedWorkOrder(t, true)

	resp, err := env.client.ListNotifications(env.ctx, true)
	require.NoError(t, err)
	require.True(t, success(resp))
	list := resp.GetFields()["notifications"].GetListValue().GetValues()
	require.Len(t, list, 1)
	id := uint(list[0].GetStructValue().GetFields()["id"].GetNumberValue())

	{
		resp, err := env.client.AcknowledgeNotification(env.ctx, id)
		require.NoError(t, err)
		require.True(t, success(resp))
		n := resp.GetFields()["notification"].GetStructValue().GetFields()
		assert.True(t, n["is_read"].GetBoolValue())
		assert.NotEmpty(t, n["read_at"].GetStringValue())
	}

	{
		// acknowledging twice is fine
		resp, err := env.client.AcknowledgeNotification(env.ctx, id)
		require.NoError(t, err)
		assert.True(t, success(resp))
	}

	{
		resp, err := env.client.ListNotifications(env.ctx, true)
		require.NoError(t, err)
		assert.Empty(t, resp.GetFields()["notifications"].GetListValue().GetValues())
	}

	{
		resp, err := env.client.AcknowledgeNotification(env.ctx, 999)
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Equal(t, "notification 999 not found", message(resp))
	}

	{
		resp, err := env.client.AcknowledgeNotification(env.ctx, 0)
		require.NoError(t, err)
		assert.False(t, success(resp))
	}
}

func TestStats(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)
	order := env.seedWorkOrder(t, false)
	env.seedWorkOrder(t, false)
	_, err := env.tracker.WorkOrder.TransitionStatus(context.Background(), order.ID, models.StatusInProgress)
	require.NoError(t, err)

	{
		resp, err := env.client.GetWorkOrderStats(env.ctx)
		require.NoError(t, err)
		require.True(t, success(resp))
		fields := resp.GetFields()
		assert.Equal(t, float64(2), fields["total"].GetNumberValue())
		assert.Equal(t, float64(1), fields["pending"].GetNumberValue())
		assert.Equal(t, float64(1), fields["in_progress"].GetNumberValue())
		assert.Equal(t, float64(0), fields["completed"].GetNumberValue())
	}

	{
		resp, err := env.client.GetCompletionTrend(env.ctx, 0)
		require.NoError(t, err)
		require.True(t, success(resp))
		assert.Len(t, resp.GetFields()["trend"].GetListValue().GetValues(), tracker.DefaultWindowDays)
	}

	{
		resp, err := env.client.GetCompletionTrend(env.ctx, 7)
		require.NoError(t, err)
		assert.Len(t, resp.GetFields()["trend"].GetListValue().GetValues(), 7)
	}

	{
		resp, err := env.client.GetCompletionTrend(env.ctx, tracker.MaxWindowDays+1)
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Contains(t, message(resp), "days")
	}
}

func TestStats_InternalError(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServer(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockIStats := mocks.NewMockIStats(ctrl)
	env.tracker.WithServices(tracker.ServiceOpts{Stats: mockIStats})

	mockIStats.EXPECT().
		StatusCounts(gomock.Any()).
		Return(nil, fmt.Errorf("test error")).
		Times(1)

	_, err := env.client.GetWorkOrderStats(env.ctx)
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	assert.Equal(t, codes.Internal, st.Code())
	assert.Contains(t, st.Message(), "trace id")
	assert.NotContains(t, st.Message(), "test error")
}

func TestRateLimitInterceptor(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := limiter.NewStore(1, 2)
	env := startTestServerWithLimiter(t, limiterStore)
	order := env.seedWorkOrder(t, false)

	// First 2 requests should pass
	for i, s := range []models.WorkOrderStatus{models.StatusInProgress, models.StatusCompleted} {
		_, err := env.client.UpdateWorkOrderStatus(env.ctx, order.ID, string(s))
		require.NoError(t, err, "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	_, err := env.client.UpdateWorkOrderStatus(env.ctx, order.ID, string(models.StatusPending))
	require.Error(t, err, "expected third request to be rate limited")
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// reads are not limited
	_, err = env.client.GetWorkOrderStats(env.ctx)
	require.NoError(t, err)

	// increase rate limiter
	resp, err := env.client.SetUserLimiter(env.ctx, env.user.ID, 100, 5)
	require.NoError(t, err)
	require.True(t, success(resp), message(resp))

	// Should pass again
	_, err = env.client.UpdateWorkOrderStatus(env.ctx, order.ID, string(models.StatusPending))
	require.NoError(t, err, "expected request after raising the limit to pass")
}

func TestSetUserLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		env := startTestServer(t) // without limiter store
		resp, err := env.client.SetUserLimiter(env.ctx, env.user.ID, 2, 2)
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Contains(t, message(resp), "No effect")
	}

	{
		env := startTestServerWithLimiter(t, limiter.NewStore(1, 1))
		resp, err := env.client.SetUserLimiter(env.ctx, 0, 0, 0)
		require.NoError(t, err)
		assert.False(t, success(resp))
		assert.Contains(t, message(resp), "validation error")
	}
}

func TestStructRequests_RejectFractionalIDs(t *testing.T) {
	common.SetTestLoggerNop()
	env := startTestServerWithLimiter(t, limiter.NewStore(1, 1))
	order := env.seedWorkOrder(t, false)

	invoke := func(method string, fields map[string]any) *structpb.Struct {
		in, err := structpb.NewStruct(fields)
		require.NoError(t, err)
		out := new(structpb.Struct)
		require.NoError(t, env.client.cc.Invoke(env.ctx, method, in, out))
		return out
	}

	{
		resp := invoke(FullMethodUpdateWorkOrderStatus, map[string]any{
			"work_order_id": float64(order.ID) + 0.7,
			"new_status":    string(models.StatusCompleted),
		})
		assert.False(t, success(resp))
		assert.Contains(t, resp.GetFields()["fields"].GetStructValue().GetFields(), "work_order_id")

		stored, err := env.tracker.WorkOrder.GetWorkOrder(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
	}

	{
		resp := invoke(FullMethodSetUserLimiter, map[string]any{
			"user_id": float64(env.user.ID) + 0.5,
			"rate":    2.5,
			"burst":   3,
		})
		assert.False(t, success(resp))
		assert.Contains(t, resp.GetFields()["fields"].GetStructValue().GetFields(), "user_id")
	}

	{
		resp := invoke(FullMethodSetUserLimiter, map[string]any{
			"user_id": env.user.ID,
			"rate":    2.5,
			"burst":   1.5,
		})
		assert.False(t, success(resp))
		assert.Contains(t, resp.GetFields()["fields"].GetStructValue().GetFields(), "burst")
	}

	{
		// whole numbers sent as floats are fine
		resp := invoke(FullMethodSetUserLimiter, map[string]any{
			"user_id": float64(env.user.ID),
			"rate":    2.5,
			"burst":   3.0,
		})
		assert.True(t, success(resp), message(resp))
	}
}
