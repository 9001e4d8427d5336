// Package report renders maintenance logs and work orders as CSV and PDF exports. Both formats
// share the same columns in the same order.
package report

import (
	"strconv"

	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

var (
	LogHeaders       = []string{"Date", "Lot Number", "Contact Details", "Maintenance Class", "Description", "Allocation"}
	WorkOrderHeaders = []string{"ID", "Status", "Assigned To", "Scheduled Date", "Completed Date", "Priority", "Is Critical"}
)

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string
	Headers []string
	// Widths are PDF column widths in millimetres, one per header.
	Widths []float64
	Rows   [][]string
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func LogRow(l models.MaintenanceLog) []string {
	return []string{
		models.FormatDate(l.Date),
		l.LotNumber,
		l.ContactDetails,
		string(l.MaintenanceClass),
		l.Description,
		l.Allocation,
	}
}

func WorkOrderRow(o models.WorkOrder) []string {
	return []string{
		strconv.FormatUint(uint64(o.ID), 10),
		string(o.Status),
		o.AssignedTo,
		models.FormatDate(o.ScheduledDate),
		models.FormatOptionalDate(o.CompletedDate),
		string(o.Priority),
		yesNo(o.IsCritical),
	}
}

func LogTable(title string, logs []models.MaintenanceLog) Table {
	rows := make([][]string, len(logs))
	for i, l := range logs {
		rows[i] = LogRow(l)
	}
	return Table{
		Title:   title,
		Headers: LogHeaders,
		Widths:  []float64{25, 30, 55, 35, 95, 37},
		Rows:    rows,
	}
}

func WorkOrderTable(title string, orders []models.WorkOrder) Table {
	rows := make([][]string, len(orders))
	for i, o := range orders {
		rows[i] = WorkOrderRow(o)
	}
	return Table{
		Title:   title,
		Headers: WorkOrderHeaders,
		Widths:  []float64{18, 32, 70, 36, 36, 30, 25},
		Rows:    rows,
	}
}
