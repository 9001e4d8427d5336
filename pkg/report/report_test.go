package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

func sampleOrders(t *testing.T) []models.WorkOrder {
	t.Helper()
	scheduled, err := models.ParseDate("2024-03-20")
	require.NoError(t, err)
	completed, err := models.ParseDate("2024-03-21")
	require.NoError(t, err)

	return []models.WorkOrder{
		{ID: 1, Status: models.StatusPending, AssignedTo: "Alice", ScheduledDate: scheduled, Priority: models.PriorityHigh, IsCritical: true},
		{ID: 2, Status: models.StatusCompleted, AssignedTo: "Bob, Jr.", ScheduledDate: scheduled, CompletedDate: &completed, Priority: models.PriorityLow},
	}
}

func TestWorkOrderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, WorkOrderTable("Work Orders", sampleOrders(t))))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Status", "Assigned To", "Scheduled Date", "Completed Date", "Priority", "Is Critical"}, records[0])
	assert.Equal(t, []string{"1", "Pending", "Alice", "2024-03-20", "", "High", "Yes"}, records[1])
	assert.Equal(t, []string{"2", "Completed", "Bob, Jr.", "2024-03-20", "2024-03-21", "Low", "No"}, records[2])
}

func TestLogCSV(t *testing.T) {
	date, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	logs := []models.MaintenanceLog{{
		Date:             date,
		LotNumber:        "LOT001",
		ContactDetails:   "ops@example.com",
		MaintenanceClass: models.MaintenanceClass3MTR,
		Description:      "line one\nline two",
		Allocation:       "Hangar A",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, LogTable("Maintenance Logs", logs)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, LogHeaders, records[0])
	assert.Equal(t, "line one\nline two", records[1][4])
}

func TestCSVNeutralizesFormulas(t *testing.T) {
	date, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	logs := []models.MaintenanceLog{{
		Date:             date,
		LotNumber:        "+LOT001",
		ContactDetails:   "@ops",
		MaintenanceClass: models.MaintenanceClassIAS,
		Description:      "=HYPERLINK(\"http://example.com\")",
		Allocation:       "-1+2",
	}}
	orders := []models.WorkOrder{{ID: 7, Status: models.StatusPending, AssignedTo: "=cmd|' /C calc'!A0", ScheduledDate: date, Priority: models.PriorityLow}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, LogTable("Maintenance Logs", logs)))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "'+LOT001", "'@ops", "IAS", "'=HYPERLINK(\"http://example.com\")", "'-1+2"}, records[1])

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, WorkOrderTable("Work Orders", orders)))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=cmd|' /C calc'!A0", records[1][2])
	assert.Equal(t, "7", records[1][0])

	// the PDF shows the text as entered
	assert.Equal(t, "=cmd|' /C calc'!A0", WorkOrderRow(orders[0])[2])
}

func TestEmptyCSVHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, WorkOrderTable("Work Orders", nil)))
	assert.Equal(t, strings.Join(WorkOrderHeaders, ",")+"\n", buf.String())
}

func TestWritePDF(t *testing.T) {
	orders := sampleOrders(t)
	for i := 0; i < 80; i++ {
		o := orders[0]
		o.ID = uint(i + 3)
		o.AssignedTo = strings.Repeat("Ä", 90)
		orders = append(orders, o)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, WorkOrderTable("Work Orders", orders), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDF_EdgeCases(t *testing.T) {
	table := WorkOrderTable("Work Orders", nil)
	table.Widths = table.Widths[:2]

	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, table, time.Now()))
}
