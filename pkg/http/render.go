package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

//go:embed templates static
var assetsFS embed.FS

const flashCookie = "mt_flash"

var templateFuncs = template.FuncMap{
	"formatDate":         models.FormatDate,
	"formatOptionalDate": models.FormatOptionalDate,
	"truncate":           tracker.Truncate,
	"statuses":           func() []models.WorkOrderStatus { return models.WorkOrderStatuses },
	"priorities":         func() []models.Priority { return models.Priorities },
	"classes":            func() []models.MaintenanceClass { return models.MaintenanceClasses },
	"statusBadge": func(s models.WorkOrderStatus) string {
		switch s {
		case models.StatusPending:
			return "warning"
		case models.StatusInProgress:
			return "info"
		case models.StatusCompleted:
			return "success"
		}
		return "secondary"
	},
	"fieldError": func(errs map[string]string, field string) string { return errs[field] },
	"has": func(values []string, v string) bool {
		for _, value := range values {
			if value == v {
				return true
			}
		}
		return false
	},
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

// traceID is short enough to read out to support and long enough to grep the logs for.
func traceID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(category+"|"+message), 60, "/", "", false, true)
}

func popFlash(c *gin.Context) gin.H {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(value, "|")
	if !found {
		return gin.H{"category": "info", "message": value}
	}
	return gin.H{"category": category, "message": message}
}

// page assembles the data every layout render needs. Missing company setup is not an error.
func (rs *RestfulServer) page(c *gin.Context, name, title string, data gin.H) gin.H {
	h := gin.H{
		"page":  name,
		"title": title,
		"flash": popFlash(c),
	}
	if claims, ok := auth.CurrentUser(c); ok {
		h["user"] = claims.Username
		if unread, err := rs.Tracker.Notification.CountUnread(c.Request.Context()); err == nil {
			h["unread"] = unread
		}
		if company, err := rs.Tracker.Company.GetCompany(c.Request.Context()); err == nil {
			h["company"] = company
		}
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (rs *RestfulServer) render(c *gin.Context, status int, name, title string, data gin.H) {
	c.HTML(status, "layout.html", rs.page(c, name, title, data))
}

// respondError maps engine errors onto JSON responses.
func (rs *RestfulServer) respondError(c *gin.Context, err error) {
	var verr *tracker.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, tracker.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, tracker.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	default:
		id := traceID()
		logger().Error("Request failed",
			zap.String("trace_id", id),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "trace_id": id})
	}
}

// renderError is respondError for HTML pages.
func (rs *RestfulServer) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrValidation):
		rs.render(c, http.StatusBadRequest, "error", "Invalid request", gin.H{"message": err.Error()})
	case errors.Is(err, tracker.ErrNotFound):
		rs.render(c, http.StatusNotFound, "error", "Not found", gin.H{"message": err.Error()})
	default:
		id := traceID()
		logger().Error("Page failed",
			zap.String("trace_id", id),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		rs.render(c, http.StatusInternalServerError, "error", "Something went wrong",
			gin.H{"message": "An unexpected error occurred.", "trace_id": id})
	}
}

// formErrors extracts field messages when err is a validation error, for re-rendering a form.
func formErrors(err error) (map[string]string, bool) {
	var verr *tracker.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

func isNotFound(err error) bool {
	return errors.Is(err, tracker.ErrNotFound)
}
