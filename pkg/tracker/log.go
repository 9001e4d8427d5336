package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

type LogInput struct {
	Date             datatypes.Date
	LotNumber        string
	ContactDetails   string
	MaintenanceClass models.MaintenanceClass
	Description      string
	Allocation       string
}

func (in LogInput) validate() *ValidationError {
	verr := &ValidationError{}
	if time.Time(in.Date).IsZero() {
		verr.Add("date", "is required")
	}
	requireText(verr, "lot_number", in.LotNumber, 50)
	requireText(verr, "contact_details", in.ContactDetails, 255)
	requireText(verr, "description", in.Description, 0)
	requireText(verr, "allocation", in.Allocation, 100)
	if !in.MaintenanceClass.Valid() {
		verr.Add("maintenance_class", "must be one of 3MTR, IAS, Supplier")
	}
	return verr
}

// requireText rejects blank values and, when max > 0, values longer than max runes.
func requireText(verr *ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "is required")
		return
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		verr.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

type LogFilter struct {
	From             *datatypes.Date
	To               *datatypes.Date
	MaintenanceClass models.MaintenanceClass
}

func (t *Tracker) newLog(input LogInput) models.MaintenanceLog {
	return models.MaintenanceLog{
		Date:             models.DateOf(time.Time(input.Date)),
		LotNumber:        strings.TrimSpace(input.LotNumber),
		ContactDetails:   strings.TrimSpace(input.ContactDetails),
		MaintenanceClass: input.MaintenanceClass,
		Description:      input.Description,
		Allocation:       strings.TrimSpace(input.Allocation),
		CreatedAt:        t.now(),
	}
}

func (t *Tracker) createLog(ctx context.Context, input LogInput) (*models.MaintenanceLog, error) {
	logger := t.logger(common.LoggerCategoryLog)

	if verr := input.validate(); verr.HasErrors() {
		return nil, verr
	}

	entry := t.newLog(input)
	if err := t.Db.Conn.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create maintenance log: %w", err)
	}

	logger.Info("Maintenance log created",
		zap.Uint("id", entry.ID),
		zap.String("lot_number", entry.LotNumber),
		zap.String("maintenance_class", string(entry.MaintenanceClass)))

	return &entry, nil
}

func (t *Tracker) getLog(ctx context.Context, id uint) (*models.MaintenanceLog, error) {
	var entry models.MaintenanceLog
	if err := t.Db.Conn.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "maintenance log", ID: id}
		}
		return nil, fmt.Errorf("get maintenance log %d: %w", id, err)
	}
	return &entry, nil
}

func (t *Tracker) listLogs(ctx context.Context, filter LogFilter) ([]models.MaintenanceLog, error) {
	q := t.Db.Conn.WithContext(ctx).Model(&models.MaintenanceLog{})
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.MaintenanceClass != "" {
		q = q.Where("maintenance_class = ?", filter.MaintenanceClass)
	}

	var logs []models.MaintenanceLog
	if err := q.Order("date desc").Order("id desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list maintenance logs: %w", err)
	}
	return logs, nil
}

type ILogImpl struct {
	tracker *Tracker
}

func (il *ILogImpl) CreateLog(ctx context.Context, input LogInput) (*models.MaintenanceLog, error) {
	return il.tracker.createLog(ctx, input)
}

func (il *ILogImpl) GetLog(ctx context.Context, id uint) (*models.MaintenanceLog, error) {
	return il.tracker.getLog(ctx, id)
}

func (il *ILogImpl) ListLogs(ctx context.Context, filter LogFilter) ([]models.MaintenanceLog, error) {
	return il.tracker.listLogs(ctx, filter)
}

func (t *Tracker) GetILog() ILog {
	return &ILogImpl{tracker: t}
}
