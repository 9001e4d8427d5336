package tracker_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker/mocks"
)

// fixedNow is the clock every engine test runs against.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func GetMockTrackerWithMemorySqliteDialector(t *testing.T, useMockINotification, useMockIStats bool) (
	*gomock.Controller,
	*tracker.Tracker,
	*mocks.MockINotification,
	*mocks.MockIStats,
) {
	ctrl := gomock.NewController(t)

	mockINotification := mocks.NewMockINotification(ctrl)
	mockIStats := mocks.NewMockIStats(ctrl)

	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })

	trackerInstance := tracker.New(dbInstance)
	trackerInstance.Now = func() time.Time { return fixedNow }

	if useMockINotification {
		trackerInstance.WithServices(tracker.ServiceOpts{Notification: mockINotification})
	}
	if useMockIStats {
		trackerInstance.WithServices(tracker.ServiceOpts{Stats: mockIStats})
	}

	return ctrl, trackerInstance, mockINotification, mockIStats
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func day(value string) datatypes.Date {
	d, err := models.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleLogInput() tracker.LogInput {
	return tracker.LogInput{
		Date:             day("2024-01-01"),
		LotNumber:        "LOT001",
		ContactDetails:   "ops@example.com",
		MaintenanceClass: models.MaintenanceClass3MTR,
		Description:      "Hydraulic pump inspection on line 3",
		Allocation:       "Hangar A",
	}
}

func sampleWorkOrderInput() tracker.WorkOrderInput {
	return tracker.WorkOrderInput{
		Status:        models.StatusPending,
		AssignedTo:    "Alice",
		ScheduledDate: day("2024-03-20"),
		Priority:      models.PriorityMedium,
	}
}

func mustCreateLog(t *testing.T, tr *tracker.Tracker, input tracker.LogInput) *models.MaintenanceLog {
	t.Helper()
	entry, err := tr.Log.CreateLog(context.Background(), input)
	require.NoError(t, err)
	return entry
}

func mustCreateWorkOrder(t *testing.T, tr *tracker.Tracker, logID uint, input tracker.WorkOrderInput) *models.WorkOrder {
	t.Helper()
	order, err := tr.WorkOrder.CreateWorkOrder(context.Background(), logID, input)
	require.NoError(t, err)
	return order
}
