package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	_ "liyu1981.xyz/maintenance-tracker/pkg/testing"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

func newTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	dbInstance, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbInstance.Close() })
	return tracker.New(dbInstance)
}

func TestLoad(t *testing.T) {
	f, err := Load("pkg/seed/testdata/fixtures.yaml")
	require.NoError(t, err)

	require.NotNil(t, f.Company)
	assert.Equal(t, "Acme Aero Maintenance", f.Company.Name)
	assert.Len(t, f.Users, 1)
	require.Len(t, f.MaintenanceLogs, 3)
	assert.Equal(t, "3MTR", f.MaintenanceLogs[0].MaintenanceClass)
	assert.True(t, f.MaintenanceLogs[0].WorkOrders[1].IsCritical)

	// defaults fill in status and priority
	wo := f.MaintenanceLogs[2].WorkOrders[0]
	assert.Equal(t, string(models.StatusPending), wo.Status)
	assert.Equal(t, string(models.PriorityMedium), wo.Priority)

	_, err = Load("pkg/seed/testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("maintenance_logs: [this is: not valid"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	common.SetTestLoggerNop()
	tr := newTracker(t)
	ctx := context.Background()

	f, err := Load("pkg/seed/testdata/fixtures.yaml")
	require.NoError(t, err)

	result, err := Apply(ctx, tr, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Company: true, Users: 1, Logs: 3, WorkOrders: 4}, result)

	counts, err := tr.Stats.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(2), counts.Pending)
	assert.Equal(t, int64(1), counts.InProgress)
	assert.Equal(t, int64(1), counts.Completed)

	// the critical work order raised its creation notification
	notifications, err := tr.Notification.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Critical work order created: Routine maintenance check on hydraulic pump", notifications[0].Message)

	_, err = tr.User.AuthenticateUser(ctx, "admin", "change-me-now")
	assert.NoError(t, err)

	// users are unique, so applying twice stops at the first user
	_, err = Apply(ctx, tr, f)
	assert.ErrorIs(t, err, tracker.ErrValidation)
}

func TestApply_BadDate(t *testing.T) {
	common.SetTestLoggerNop()
	tr := newTracker(t)

	f, err := Parse([]byte(`
maintenance_logs:
  - date: 2024/01/01
    lot_number: LOT009
    contact_details: someone
    maintenance_class: IAS
    description: something
    allocation: somewhere
`))
	require.NoError(t, err)

	result, err := Apply(context.Background(), tr, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOT009")
	assert.Equal(t, 0, result.Logs)
}

func TestApply_EngineValidation(t *testing.T) {
	common.SetTestLoggerNop()
	tr := newTracker(t)

	f, err := Parse([]byte(`
maintenance_logs:
  - date: "2024-01-01"
    lot_number: LOT010
    contact_details: someone
    maintenance_class: Unknown
    description: something
    allocation: somewhere
`))
	require.NoError(t, err)

	_, err = Apply(context.Background(), tr, f)
	assert.ErrorIs(t, err, tracker.ErrValidation)
}
