// Package seed loads sample data from YAML fixtures. It only runs when invoked explicitly
// (maintctl seed); nothing in the server calls it.
package seed

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

type Fixtures struct {
	Company         *CompanyFixture `yaml:"company"`
	Users           []UserFixture   `yaml:"users"`
	MaintenanceLogs []LogFixture    `yaml:"maintenance_logs"`
}

type CompanyFixture struct {
	Name        string `yaml:"name"`
	LogoURL     string `yaml:"logo_url"`
	ContactInfo string `yaml:"contact_info"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type LogFixture struct {
	Date             string             `yaml:"date"`
	LotNumber        string             `yaml:"lot_number"`
	ContactDetails   string             `yaml:"contact_details"`
	MaintenanceClass string             `yaml:"maintenance_class"`
	Description      string             `yaml:"description"`
	Allocation       string             `yaml:"allocation"`
	WorkOrders       []WorkOrderFixture `yaml:"work_orders"`
}

type WorkOrderFixture struct {
	Status        string `yaml:"status"`
	AssignedTo    string `yaml:"assigned_to"`
	ScheduledDate string `yaml:"scheduled_date"`
	Priority      string `yaml:"priority"`
	Notes         string `yaml:"notes"`
	IsCritical    bool   `yaml:"is_critical"`
}

// Result counts what Apply created.
type Result struct {
	Company    bool
	Users      int
	Logs       int
	WorkOrders int
}

func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals fixtures and applies defaults. Field rules are left to the engine.
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	for i := range f.MaintenanceLogs {
		for j := range f.MaintenanceLogs[i].WorkOrders {
			wo := &f.MaintenanceLogs[i].WorkOrders[j]
			if wo.Status == "" {
				wo.Status = string(models.StatusPending)
			}
			if wo.Priority == "" {
				wo.Priority = string(models.PriorityMedium)
			}
		}
	}
	return &f, nil
}

func (l LogFixture) input() (tracker.LogInput, error) {
	date, err := models.ParseDate(l.Date)
	if err != nil {
		return tracker.LogInput{}, fmt.Errorf("seed: maintenance log %q: date %q: %w", l.LotNumber, l.Date, err)
	}
	return tracker.LogInput{
		Date:             date,
		LotNumber:        l.LotNumber,
		ContactDetails:   l.ContactDetails,
		MaintenanceClass: models.MaintenanceClass(l.MaintenanceClass),
		Description:      l.Description,
		Allocation:       l.Allocation,
	}, nil
}

func (w WorkOrderFixture) input() (tracker.WorkOrderInput, error) {
	scheduled, err := models.ParseDate(w.ScheduledDate)
	if err != nil {
		return tracker.WorkOrderInput{}, fmt.Errorf("seed: work order for %q: scheduled_date %q: %w", w.AssignedTo, w.ScheduledDate, err)
	}
	return tracker.WorkOrderInput{
		Status:        models.WorkOrderStatus(w.Status),
		AssignedTo:    w.AssignedTo,
		ScheduledDate: scheduled,
		Priority:      models.Priority(w.Priority),
		Notes:         w.Notes,
		IsCritical:    w.IsCritical,
	}, nil
}

// Apply writes the fixtures through the engine, so critical work orders raise notifications
// exactly as they would from the UI. It stops at the first error; earlier rows stay committed.
func Apply(ctx context.Context, t *tracker.Tracker, f *Fixtures) (*Result, error) {
	logger := common.GetLoggerWith(common.LoggerNameSeed)
	result := &Result{}

	if f.Company != nil {
		if _, err := t.Company.UpsertCompany(ctx, tracker.CompanyInput{
			Name:        f.Company.Name,
			LogoURL:     f.Company.LogoURL,
			ContactInfo: f.Company.ContactInfo,
		}); err != nil {
			return result, fmt.Errorf("seed: company: %w", err)
		}
		result.Company = true
	}

	for _, u := range f.Users {
		if _, err := t.User.RegisterUser(ctx, tracker.UserInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
		}); err != nil {
			return result, fmt.Errorf("seed: user %q: %w", u.Username, err)
		}
		result.Users++
	}

	for _, l := range f.MaintenanceLogs {
		logInput, err := l.input()
		if err != nil {
			return result, err
		}
		entry, err := t.Log.CreateLog(ctx, logInput)
		if err != nil {
			return result, fmt.Errorf("seed: maintenance log %q: %w", l.LotNumber, err)
		}
		result.Logs++

		for _, w := range l.WorkOrders {
			input, err := w.input()
			if err != nil {
				return result, err
			}
			if _, err := t.WorkOrder.CreateWorkOrder(ctx, entry.ID, input); err != nil {
				return result, fmt.Errorf("seed: work order for %q: %w", l.LotNumber, err)
			}
			result.WorkOrders++
		}
	}

	logger.Info("Fixtures applied",
		zap.Bool("company", result.Company),
		zap.Int("users", result.Users),
		zap.Int("maintenance_logs", result.Logs),
		zap.Int("work_orders", result.WorkOrders))
	return result, nil
}
