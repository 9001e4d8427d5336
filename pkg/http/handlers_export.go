package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maintenance-tracker/pkg/report"
)

const (
	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypePDF = "application/pdf"
)

// reportTitle prefixes the company name once the company is set up.
func (rs *RestfulServer) reportTitle(c *gin.Context, title string) string {
	if company, err := rs.Tracker.Company.GetCompany(c.Request.Context()); err == nil {
		return company.Name + " - " + title
	}
	return title
}

func (rs *RestfulServer) logTable(c *gin.Context) (report.Table, bool) {
	filter, err := parseLogFilter(c)
	if err != nil {
		rs.respondError(c, err)
		return report.Table{}, false
	}
	logs, err := rs.Tracker.Log.ListLogs(c.Request.Context(), filter)
	if err != nil {
		rs.respondError(c, err)
		return report.Table{}, false
	}
	return report.LogTable(rs.reportTitle(c, "Maintenance Logs"), logs), true
}

func (rs *RestfulServer) workOrderTable(c *gin.Context) (report.Table, bool) {
	query, err := parseWorkOrderQuery(c)
	if err != nil {
		rs.respondError(c, err)
		return report.Table{}, false
	}
	orders, err := rs.Tracker.WorkOrder.QueryWorkOrders(c.Request.Context(), query)
	if err != nil {
		rs.respondError(c, err)
		return report.Table{}, false
	}
	return report.WorkOrderTable(rs.reportTitle(c, "Work Orders"), orders), true
}

func (rs *RestfulServer) sendTable(c *gin.Context, table report.Table, filename, contentType string) {
	var buf bytes.Buffer
	var err error
	if contentType == contentTypePDF {
		err = report.WritePDF(&buf, table, rs.Tracker.Clock())
	} else {
		err = report.WriteCSV(&buf, table)
	}
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (rs *RestfulServer) ExportLogsCSV(c *gin.Context) {
	if table, ok := rs.logTable(c); ok {
		rs.sendTable(c, table, "maintenance_logs.csv", contentTypeCSV)
	}
}

func (rs *RestfulServer) ExportLogsPDF(c *gin.Context) {
	if table, ok := rs.logTable(c); ok {
		rs.sendTable(c, table, "maintenance_logs.pdf", contentTypePDF)
	}
}

func (rs *RestfulServer) ExportWorkOrdersCSV(c *gin.Context) {
	if table, ok := rs.workOrderTable(c); ok {
		rs.sendTable(c, table, "work_orders.csv", contentTypeCSV)
	}
}

func (rs *RestfulServer) ExportWorkOrdersPDF(c *gin.Context) {
	if table, ok := rs.workOrderTable(c); ok {
		rs.sendTable(c, table, "work_orders.pdf", contentTypePDF)
	}
}
