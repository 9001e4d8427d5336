package http

import (
	"net/http"
	"strconv"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, tracker.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}

func parseWindow(c *gin.Context) (int, error) {
	var q WindowQuery
	if issues := windowQuerySchema.Parse(zhttp.Request(c.Request), &q); issues != nil {
		return 0, issuesToValidation(issues, "days")
	}
	return q.Days, nil
}

func (rs *RestfulServer) UpdateWorkOrderStatus(c *gin.Context) {
	var form StatusUpdateForm
	if issues := statusUpdateFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rs.respondError(c, issuesToValidation(issues, "work_order_id", "new_status"))
		return
	}

	if _, err := rs.Tracker.WorkOrder.TransitionStatus(
		c.Request.Context(),
		uint(form.WorkOrderID),
		models.WorkOrderStatus(form.NewStatus),
	); err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (rs *RestfulServer) GetWorkOrderStats(c *gin.Context) {
	counts, err := rs.Tracker.Stats.StatusCounts(c.Request.Context())
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (rs *RestfulServer) GetCompletionTrend(c *gin.Context) {
	days, err := parseWindow(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	trend, err := rs.Tracker.Stats.CompletionTrend(c.Request.Context(), days)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (rs *RestfulServer) GetCompletionRate(c *gin.Context) {
	days, err := parseWindow(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	rate, err := rs.Tracker.Stats.CompletionRate(c.Request.Context(), days)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (rs *RestfulServer) ListWorkOrders(c *gin.Context) {
	query, err := parseWorkOrderQuery(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	orders, err := rs.Tracker.WorkOrder.QueryWorkOrders(c.Request.Context(), query)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (rs *RestfulServer) GetWorkOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	order, err := rs.Tracker.WorkOrder.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// WorkOrderRequest creates a work order under an existing log, or together with a new log when
// maintenance_log_id is absent.
type WorkOrderRequest struct {
	MaintenanceLogID int      `json:"maintenance_log_id"`
	Status           string   `json:"status"`
	AssignedTo       string   `json:"assigned_to"`
	ScheduledDate    string   `json:"scheduled_date"`
	Priority         string   `json:"priority"`
	Notes            string   `json:"notes"`
	IsCritical       bool     `json:"is_critical"`
	MaintenanceLog   *LogForm `json:"maintenance_log"`
}

var workOrderRequestSchema = z.Struct(z.Shape{
	"MaintenanceLogID": z.Int().Optional().GT(0),
	"Status":           z.String().Required().OneOf(common.StringsOf(models.WorkOrderStatuses)),
	"AssignedTo":       z.String().Required().Max(100),
	"ScheduledDate":    z.String().Required(),
	"Priority":         z.String().Required().OneOf(common.StringsOf(models.Priorities)),
	"Notes":            z.String().Optional(),
	"IsCritical":       z.Bool().Optional(),
	"MaintenanceLog":   z.Ptr(logFormSchema),
})

func (rs *RestfulServer) PostWorkOrder(c *gin.Context) {
	var req WorkOrderRequest
	if issues := workOrderRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		rs.respondError(c, issuesToValidation(issues, workOrderFormFields...))
		return
	}

	input, verr := WorkOrderForm{
		Status:        req.Status,
		AssignedTo:    req.AssignedTo,
		ScheduledDate: req.ScheduledDate,
		Priority:      req.Priority,
		Notes:         req.Notes,
		IsCritical:    req.IsCritical,
	}.toInput()

	var order *models.WorkOrder
	var err error
	switch {
	case req.MaintenanceLogID != 0:
		if verr.HasErrors() {
			rs.respondError(c, verr)
			return
		}
		order, err = rs.Tracker.WorkOrder.CreateWorkOrder(c.Request.Context(), uint(req.MaintenanceLogID), input)
	case req.MaintenanceLog != nil:
		logInput, logErr := req.MaintenanceLog.toInput()
		for field, message := range logErr.Fields {
			verr.Add("maintenance_log."+field, message)
		}
		if verr.HasErrors() {
			rs.respondError(c, verr)
			return
		}
		order, err = rs.Tracker.WorkOrder.CreateWorkOrderWithLog(c.Request.Context(), logInput, input)
	default:
		rs.respondError(c, tracker.NewValidationError("maintenance_log_id", "is required unless maintenance_log is given"))
		return
	}
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// WorkOrderPatch edits the fields present in the body; status changes go through
// /update_work_order_status.
type WorkOrderPatch struct {
	AssignedTo    *string `json:"assigned_to"`
	ScheduledDate *string `json:"scheduled_date"`
	Priority      *string `json:"priority"`
	Notes         *string `json:"notes"`
	IsCritical    *bool   `json:"is_critical"`
}

var workOrderPatchFields = []string{"assigned_to", "scheduled_date", "priority", "notes", "is_critical"}

var workOrderPatchSchema = z.Struct(z.Shape{
	"AssignedTo":    z.Ptr(z.String().Max(100)),
	"ScheduledDate": z.Ptr(dateString()),
	"Priority":      z.Ptr(z.String().OneOf(common.StringsOf(models.Priorities))),
	"Notes":         z.Ptr(z.String()),
	"IsCritical":    z.Ptr(z.Bool()),
})

func (p WorkOrderPatch) toUpdate() tracker.WorkOrderUpdate {
	update := tracker.WorkOrderUpdate{
		AssignedTo: p.AssignedTo,
		Notes:      p.Notes,
		IsCritical: p.IsCritical,
	}
	if p.Priority != nil {
		priority := models.Priority(*p.Priority)
		update.Priority = &priority
	}
	if p.ScheduledDate != nil {
		update.ScheduledDate = optionalDate(*p.ScheduledDate)
	}
	return update
}

func (rs *RestfulServer) PatchWorkOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	var patch WorkOrderPatch
	if issues := workOrderPatchSchema.Parse(zhttp.Request(c.Request), &patch); issues != nil {
		rs.respondError(c, issuesToValidation(issues, workOrderPatchFields...))
		return
	}

	order, err := rs.Tracker.WorkOrder.UpdateWorkOrder(c.Request.Context(), id, patch.toUpdate())
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (rs *RestfulServer) ListNotifications(c *gin.Context) {
	notifications, err := rs.Tracker.Notification.ListNotifications(c.Request.Context(), c.Query("unread") == "true")
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (rs *RestfulServer) AcknowledgeNotification(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	n, err := rs.Tracker.Notification.AcknowledgeNotification(c.Request.Context(), id)
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notification": n})
}
