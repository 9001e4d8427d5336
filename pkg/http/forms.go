package http

import (
	"strings"

	z "github.com/Oudwins/zog"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

// issuesToValidation turns zog issues into the engine's field error shape so forms and JSON
// callers see the same field names. Root issues ($root, $first) carry no field.
func issuesToValidation(issues z.ZogIssueMap, fields ...string) *tracker.ValidationError {
	normalize := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "_", "")) }

	verr := &tracker.ValidationError{}
	for key, list := range issues {
		if strings.HasPrefix(key, "$") || len(list) == 0 {
			continue
		}
		// "status[1]" reports against "status"
		if i := strings.IndexByte(key, '['); i > 0 {
			key = key[:i]
		}
		name := key
		for _, f := range fields {
			if normalize(f) == normalize(key) {
				name = f
				break
			}
		}
		verr.Add(name, "is missing or invalid")
	}
	if !verr.HasErrors() {
		verr.Add("form", "is invalid")
	}
	return verr
}

// LogForm is also the nested "maintenance_log" object of a JSON work order; nested JSON
// objects are matched by their zog tags.
type LogForm struct {
	Date             string `zog:"date" json:"date"`
	LotNumber        string `zog:"lot_number" json:"lot_number"`
	ContactDetails   string `zog:"contact_details" json:"contact_details"`
	MaintenanceClass string `zog:"maintenance_class" json:"maintenance_class"`
	Description      string `zog:"description" json:"description"`
	Allocation       string `zog:"allocation" json:"allocation"`
}

var logFormFields = []string{"date", "lot_number", "contact_details", "maintenance_class", "description", "allocation"}

var logFormSchema = z.Struct(z.Shape{
	"Date":             z.String().Required(),
	"LotNumber":        z.String().Required().Max(50),
	"ContactDetails":   z.String().Required().Max(255),
	"MaintenanceClass": z.String().Required().OneOf(common.StringsOf(models.MaintenanceClasses)),
	"Description":      z.String().Required(),
	"Allocation":       z.String().Required().Max(100),
})

func (f LogForm) toInput() (tracker.LogInput, *tracker.ValidationError) {
	verr := &tracker.ValidationError{}
	date, err := models.ParseDate(f.Date)
	if err != nil {
		verr.Add("date", "must be a date in YYYY-MM-DD form")
	}
	return tracker.LogInput{
		Date:             date,
		LotNumber:        f.LotNumber,
		ContactDetails:   f.ContactDetails,
		MaintenanceClass: models.MaintenanceClass(f.MaintenanceClass),
		Description:      f.Description,
		Allocation:       f.Allocation,
	}, verr
}

type WorkOrderForm struct {
	MaintenanceLogID int    `zog:"maintenance_log_id"`
	Status           string `zog:"status"`
	AssignedTo       string `zog:"assigned_to"`
	ScheduledDate    string `zog:"scheduled_date"`
	Priority         string `zog:"priority"`
	Notes            string `zog:"notes"`
	IsCritical       bool   `zog:"is_critical"`
}

var workOrderFormFields = []string{"maintenance_log_id", "status", "assigned_to", "scheduled_date", "priority", "notes", "is_critical"}

var workOrderFormSchema = z.Struct(z.Shape{
	"MaintenanceLogID": z.Int().Required().GT(0),
	"Status":           z.String().Required().OneOf(common.StringsOf(models.WorkOrderStatuses)),
	"AssignedTo":       z.String().Required().Max(100),
	"ScheduledDate":    z.String().Required(),
	"Priority":         z.String().Required().OneOf(common.StringsOf(models.Priorities)),
	"Notes":            z.String().Optional(),
	"IsCritical":       z.Bool().Optional(),
})

func (f WorkOrderForm) toInput() (tracker.WorkOrderInput, *tracker.ValidationError) {
	verr := &tracker.ValidationError{}
	scheduled, err := models.ParseDate(f.ScheduledDate)
	if err != nil {
		verr.Add("scheduled_date", "must be a date in YYYY-MM-DD form")
	}
	return tracker.WorkOrderInput{
		Status:        models.WorkOrderStatus(f.Status),
		AssignedTo:    f.AssignedTo,
		ScheduledDate: scheduled,
		Priority:      models.Priority(f.Priority),
		Notes:         f.Notes,
		IsCritical:    f.IsCritical,
	}, verr
}

type StatusUpdateForm struct {
	WorkOrderID int    `zog:"work_order_id"`
	NewStatus   string `zog:"new_status"`
}

var statusUpdateFormSchema = z.Struct(z.Shape{
	"WorkOrderID": z.Int().Required().GT(0),
	"NewStatus":   z.String().Required(),
})

type CompanyForm struct {
	Name        string `zog:"name"`
	LogoURL     string `zog:"logo_url"`
	ContactInfo string `zog:"contact_info"`
}

var companyFormFields = []string{"name", "logo_url", "contact_info"}

var companyFormSchema = z.Struct(z.Shape{
	"Name":        z.String().Required().Max(100),
	"LogoURL":     z.String().Optional().Max(255),
	"ContactInfo": z.String().Optional(),
})

type LoginForm struct {
	Username string `zog:"username"`
	Password string `zog:"password"`
	Next     string `zog:"next"`
}

var loginFormSchema = z.Struct(z.Shape{
	"Username": z.String().Required(),
	"Password": z.String().Required(),
	"Next":     z.String().Optional(),
})

type RegisterForm struct {
	Username        string `zog:"username"`
	Email           string `zog:"email"`
	Password        string `zog:"password"`
	ConfirmPassword string `zog:"confirm_password"`
}

var registerFormFields = []string{"username", "email", "password", "confirm_password"}

var registerFormSchema = z.Struct(z.Shape{
	"Username":        z.String().Required().Max(80),
	"Email":           z.String().Required().Email(),
	"Password":        z.String().Required().Min(tracker.MinPasswordLen),
	"ConfirmPassword": z.String().Required(),
})

type WindowQuery struct {
	Days int `zog:"days"`
}

var windowQuerySchema = z.Struct(z.Shape{
	"Days": z.Int().Default(tracker.DefaultWindowDays).GTE(1).LTE(tracker.MaxWindowDays),
})
