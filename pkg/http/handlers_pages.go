package http

import (
	"net/http"
	"strconv"

	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

const dashboardRecentNotifications = 5

func (rs *RestfulServer) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := rs.Tracker.Stats.StatusCounts(ctx)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	rate, err := rs.Tracker.Stats.CompletionRate(ctx, tracker.DefaultWindowDays)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	unread, err := rs.Tracker.Notification.ListNotifications(ctx, true)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	if len(unread) > dashboardRecentNotifications {
		unread = unread[:dashboardRecentNotifications]
	}

	rs.render(c, http.StatusOK, "dashboard", "Dashboard", gin.H{
		"counts":        counts,
		"rate":          rate,
		"notifications": unread,
	})
}

func (rs *RestfulServer) MaintenanceLogPage(c *gin.Context) {
	rs.render(c, http.StatusOK, "maintenance_log", "New maintenance log", nil)
}

func (rs *RestfulServer) CreateMaintenanceLog(c *gin.Context) {
	var form LogForm
	rerender := func(fields map[string]string) {
		rs.render(c, http.StatusBadRequest, "maintenance_log", "New maintenance log", gin.H{"form": form, "errors": fields})
	}

	if issues := logFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rerender(issuesToValidation(issues, logFormFields...).Fields)
		return
	}
	input, verr := form.toInput()
	if verr.HasErrors() {
		rerender(verr.Fields)
		return
	}

	if _, err := rs.Tracker.Log.CreateLog(c.Request.Context(), input); err != nil {
		if fields, ok := formErrors(err); ok {
			rerender(fields)
			return
		}
		rs.renderError(c, err)
		return
	}

	setFlash(c, "success", "Maintenance log created successfully")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (rs *RestfulServer) MaintenanceLogList(c *gin.Context) {
	filter, err := parseLogFilter(c)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	logs, err := rs.Tracker.Log.ListLogs(c.Request.Context(), filter)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	rs.render(c, http.StatusOK, "maintenance_logs", "Maintenance logs", gin.H{
		"logs":     logs,
		"filter":   c.Request.URL.Query(),
		"rawQuery": c.Request.URL.RawQuery,
	})
}

func (rs *RestfulServer) workOrderFormData(c *gin.Context, data gin.H) (gin.H, error) {
	logs, err := rs.Tracker.Log.ListLogs(c.Request.Context(), tracker.LogFilter{})
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = gin.H{}
	}
	data["logs"] = logs
	return data, nil
}

func (rs *RestfulServer) WorkOrderPage(c *gin.Context) {
	data, err := rs.workOrderFormData(c, gin.H{"selectedLog": c.Query("maintenance_log_id")})
	if err != nil {
		rs.renderError(c, err)
		return
	}
	rs.render(c, http.StatusOK, "work_order", "New work order", data)
}

func (rs *RestfulServer) CreateWorkOrder(c *gin.Context) {
	var form WorkOrderForm
	rerender := func(fields map[string]string) {
		data, err := rs.workOrderFormData(c, gin.H{
			"form":        form,
			"errors":      fields,
			"selectedLog": strconv.Itoa(form.MaintenanceLogID),
		})
		if err != nil {
			rs.renderError(c, err)
			return
		}
		rs.render(c, http.StatusBadRequest, "work_order", "New work order", data)
	}

	if issues := workOrderFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rerender(issuesToValidation(issues, workOrderFormFields...).Fields)
		return
	}
	input, verr := form.toInput()
	if verr.HasErrors() {
		rerender(verr.Fields)
		return
	}

	order, err := rs.Tracker.WorkOrder.CreateWorkOrder(c.Request.Context(), uint(form.MaintenanceLogID), input)
	if err != nil {
		if fields, ok := formErrors(err); ok {
			rerender(fields)
			return
		}
		rs.renderError(c, err)
		return
	}

	if order.IsCritical {
		setFlash(c, "warning", "A critical work order has been created!")
	} else {
		setFlash(c, "success", "Work order created successfully")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (rs *RestfulServer) WorkOrderList(c *gin.Context) {
	query, err := parseWorkOrderQuery(c)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	orders, err := rs.Tracker.WorkOrder.QueryWorkOrders(c.Request.Context(), query)
	if err != nil {
		rs.renderError(c, err)
		return
	}

	rs.render(c, http.StatusOK, "work_orders", "Work orders", gin.H{
		"orders":   orders,
		"filter":   c.Request.URL.Query(),
		"rawQuery": c.Request.URL.RawQuery,
	})
}

func (rs *RestfulServer) NotificationList(c *gin.Context) {
	notifications, err := rs.Tracker.Notification.ListNotifications(c.Request.Context(), c.Query("unread") == "true")
	if err != nil {
		rs.renderError(c, err)
		return
	}
	rs.render(c, http.StatusOK, "notifications", "Notifications", gin.H{"notifications": notifications})
}

func (rs *RestfulServer) AcknowledgeNotificationPage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		rs.renderError(c, tracker.NewValidationError("id", "must be a positive integer"))
		return
	}
	if _, err := rs.Tracker.Notification.AcknowledgeNotification(c.Request.Context(), uint(id)); err != nil {
		rs.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/notifications")
}

func (rs *RestfulServer) CompanySetupPage(c *gin.Context) {
	data := gin.H{}
	company, err := rs.Tracker.Company.GetCompany(c.Request.Context())
	switch {
	case err == nil:
		data["form"] = CompanyForm{Name: company.Name, LogoURL: company.LogoURL, ContactInfo: company.ContactInfo}
	case !isNotFound(err):
		rs.renderError(c, err)
		return
	}
	rs.render(c, http.StatusOK, "company_setup", "Company setup", data)
}

func (rs *RestfulServer) CompanySetup(c *gin.Context) {
	var form CompanyForm
	rerender := func(fields map[string]string) {
		rs.render(c, http.StatusBadRequest, "company_setup", "Company setup", gin.H{"form": form, "errors": fields})
	}

	if issues := companyFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rerender(issuesToValidation(issues, companyFormFields...).Fields)
		return
	}

	_, err := rs.Tracker.Company.UpsertCompany(c.Request.Context(), tracker.CompanyInput{
		Name:        form.Name,
		LogoURL:     form.LogoURL,
		ContactInfo: form.ContactInfo,
	})
	if err != nil {
		if fields, ok := formErrors(err); ok {
			rerender(fields)
			return
		}
		rs.renderError(c, err)
		return
	}

	setFlash(c, "success", "Company information updated successfully")
	c.Redirect(http.StatusFound, "/dashboard")
}
