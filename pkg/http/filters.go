package http

import (
	"net/http"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

var sortFields = []string{string(tracker.SortScheduledDate), string(tracker.SortStatus), string(tracker.SortPriority)}

// dateString is an optional YYYY-MM-DD string.
func dateString() *z.StringSchema[string] {
	return z.String().Optional().TestFunc(func(v *string, ctx z.Ctx) bool {
		_, err := models.ParseDate(*v)
		return err == nil
	}, z.Message("must be a date in YYYY-MM-DD form"))
}

// optionalDate converts a value that already passed dateString.
func optionalDate(value string) *datatypes.Date {
	if value == "" {
		return nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil
	}
	return &d
}

// nonEmpty drops blank entries, which a "any" option in a multi-select submits.
func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// withoutBlankQuery drops empty query values so filter forms can submit "any" as an empty
// option and the schema sees the parameter as absent.
func withoutBlankQuery(r *http.Request) *http.Request {
	query := r.URL.Query()
	for key, values := range query {
		kept := nonEmpty(values)
		if len(kept) == 0 {
			query.Del(key)
			continue
		}
		query[key] = kept
	}
	clone := r.Clone(r.Context())
	clone.URL.RawQuery = query.Encode()
	return clone
}

type WorkOrderListQuery struct {
	ScheduledFrom    string   `zog:"scheduled_from"`
	ScheduledTo      string   `zog:"scheduled_to"`
	Statuses         []string `zog:"status"`
	Priorities       []string `zog:"priority"`
	MaintenanceClass string   `zog:"maintenance_class"`
	AssignedTo       string   `zog:"assigned_to"`
	CriticalOnly     *bool    `zog:"critical_only"`
	SortBy           string   `zog:"sort_by"`
	SortOrder        string   `zog:"sort_order"`
}

var workOrderListQueryFields = []string{
	"scheduled_from", "scheduled_to", "status", "priority", "maintenance_class",
	"assigned_to", "critical_only", "sort_by", "sort_order",
}

var workOrderListQuerySchema = z.Struct(z.Shape{
	"ScheduledFrom":    dateString(),
	"ScheduledTo":      dateString(),
	"Statuses":         z.Slice(z.String().OneOf(common.StringsOf(models.WorkOrderStatuses))),
	"Priorities":       z.Slice(z.String().OneOf(common.StringsOf(models.Priorities))),
	"MaintenanceClass": z.String().Optional().OneOf(common.StringsOf(models.MaintenanceClasses)),
	"AssignedTo":       z.String().Optional(),
	"CriticalOnly":     z.Ptr(z.Bool()),
	"SortBy":           z.String().Optional().OneOf(sortFields),
	"SortOrder":        z.String().Default("asc").OneOf([]string{"asc", "desc"}),
})

func (q WorkOrderListQuery) toQuery() tracker.WorkOrderQuery {
	query := tracker.WorkOrderQuery{
		ScheduledFrom:    optionalDate(q.ScheduledFrom),
		ScheduledTo:      optionalDate(q.ScheduledTo),
		MaintenanceClass: models.MaintenanceClass(q.MaintenanceClass),
		AssignedTo:       q.AssignedTo,
		CriticalOnly:     q.CriticalOnly,
		SortBy:           tracker.SortField(q.SortBy),
		SortDesc:         q.SortOrder == "desc",
	}
	for _, s := range q.Statuses {
		query.Statuses = append(query.Statuses, models.WorkOrderStatus(s))
	}
	for _, p := range q.Priorities {
		query.Priorities = append(query.Priorities, models.Priority(p))
	}
	return query
}

// parseWorkOrderQuery reads the list and export filters of work orders.
func parseWorkOrderQuery(c *gin.Context) (tracker.WorkOrderQuery, error) {
	var q WorkOrderListQuery
	if issues := workOrderListQuerySchema.Parse(zhttp.Request(withoutBlankQuery(c.Request)), &q); issues != nil {
		return tracker.WorkOrderQuery{}, issuesToValidation(issues, workOrderListQueryFields...)
	}
	return q.toQuery(), nil
}

type LogListQuery struct {
	DateFrom         string `zog:"date_from"`
	DateTo           string `zog:"date_to"`
	MaintenanceClass string `zog:"maintenance_class"`
}

var logListQueryFields = []string{"date_from", "date_to", "maintenance_class"}

var logListQuerySchema = z.Struct(z.Shape{
	"DateFrom":         dateString(),
	"DateTo":           dateString(),
	"MaintenanceClass": z.String().Optional().OneOf(common.StringsOf(models.MaintenanceClasses)),
})

func parseLogFilter(c *gin.Context) (tracker.LogFilter, error) {
	var q LogListQuery
	if issues := logListQuerySchema.Parse(zhttp.Request(withoutBlankQuery(c.Request)), &q); issues != nil {
		return tracker.LogFilter{}, issuesToValidation(issues, logListQueryFields...)
	}
	return tracker.LogFilter{
		From:             optionalDate(q.DateFrom),
		To:               optionalDate(q.DateTo),
		MaintenanceClass: models.MaintenanceClass(q.MaintenanceClass),
	}, nil
}
