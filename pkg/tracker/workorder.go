package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

type WorkOrderInput struct {
	Status        models.WorkOrderStatus
	AssignedTo    string
	ScheduledDate datatypes.Date
	Priority      models.Priority
	Notes         string
	IsCritical    bool
}

func (in WorkOrderInput) validate() *ValidationError {
	verr := &ValidationError{}
	if !in.Status.Valid() {
		verr.Add("status", "must be one of Pending, In Progress, Completed")
	}
	if !in.Priority.Valid() {
		verr.Add("priority", "must be one of Low, Medium, High")
	}
	requireText(verr, "assigned_to", in.AssignedTo, 100)
	if time.Time(in.ScheduledDate).IsZero() {
		verr.Add("scheduled_date", "is required")
	}
	return verr
}

// WorkOrderUpdate edits the non-lifecycle fields of a work order. Nil fields are left alone;
// status only changes through TransitionStatus.
type WorkOrderUpdate struct {
	AssignedTo    *string
	ScheduledDate *datatypes.Date
	Priority      *models.Priority
	Notes         *string
	IsCritical    *bool
}

func (in WorkOrderUpdate) changes() (map[string]any, *ValidationError) {
	verr := &ValidationError{}
	changes := map[string]any{}
	if in.AssignedTo != nil {
		requireText(verr, "assigned_to", *in.AssignedTo, 100)
		changes["assigned_to"] = strings.TrimSpace(*in.AssignedTo)
	}
	if in.ScheduledDate != nil {
		if time.Time(*in.ScheduledDate).IsZero() {
			verr.Add("scheduled_date", "is required")
		}
		changes["scheduled_date"] = models.DateOf(time.Time(*in.ScheduledDate))
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			verr.Add("priority", "must be one of Low, Medium, High")
		}
		changes["priority"] = *in.Priority
	}
	if in.Notes != nil {
		changes["notes"] = *in.Notes
	}
	if in.IsCritical != nil {
		changes["is_critical"] = *in.IsCritical
	}
	return changes, verr
}

type SortField string

const (
	SortScheduledDate SortField = "scheduled_date"
	SortStatus        SortField = "status"
	SortPriority      SortField = "priority"
)

// WorkOrderQuery filters and orders work orders. Zero-valued fields impose no constraint.
// likeEscaper makes user text literal inside a LIKE pattern. '!' is the escape character since a
// backslash means different things to sqlite and MySQL string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type WorkOrderQuery struct {
	ScheduledFrom    *datatypes.Date
	ScheduledTo      *datatypes.Date
	Statuses         []models.WorkOrderStatus
	Priorities       []models.Priority
	MaintenanceClass models.MaintenanceClass
	AssignedTo       string
	// CriticalOnly: nil = any, true = critical only, false = non-critical only.
	CriticalOnly *bool
	SortBy       SortField
	SortDesc     bool
}

func (q WorkOrderQuery) validate() *ValidationError {
	verr := &ValidationError{}
	for _, s := range q.Statuses {
		if !s.Valid() {
			verr.Add("status", fmt.Sprintf("unknown status %q", s))
		}
	}
	for _, p := range q.Priorities {
		if !p.Valid() {
			verr.Add("priority", fmt.Sprintf("unknown priority %q", p))
		}
	}
	if q.MaintenanceClass != "" && !q.MaintenanceClass.Valid() {
		verr.Add("maintenance_class", fmt.Sprintf("unknown maintenance class %q", q.MaintenanceClass))
	}
	switch q.SortBy {
	case "", SortScheduledDate, SortStatus, SortPriority:
	default:
		verr.Add("sort_by", "must be one of scheduled_date, status, priority")
	}
	return verr
}

// rankExpr orders column by the position of its value in ranked rather than alphabetically.
func rankExpr(column string, ranked []string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, v := range ranked {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", v, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(ranked))
	return b.String()
}

func (t *Tracker) insertWorkOrder(tx *gorm.DB, parent *models.MaintenanceLog, input WorkOrderInput) (*models.WorkOrder, error) {
	now := t.now()
	order := models.WorkOrder{
		MaintenanceLogID: parent.ID,
		Status:           input.Status,
		AssignedTo:       strings.TrimSpace(input.AssignedTo),
		ScheduledDate:    models.DateOf(time.Time(input.ScheduledDate)),
		Priority:         input.Priority,
		Notes:            input.Notes,
		IsCritical:       input.IsCritical,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if order.Status == models.StatusCompleted {
		completed := models.DateOf(now)
		order.CompletedDate = &completed
	}

	if err := tx.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create work order: %w", err)
	}

	if order.IsCritical {
		if _, err := t.emitNotification(tx, order.ID, CreationMessage(parent.Description)); err != nil {
			return nil, err
		}
	}

	order.MaintenanceLog = parent
	return &order, nil
}

func (t *Tracker) createWorkOrder(ctx context.Context, logID uint, input WorkOrderInput) (*models.WorkOrder, error) {
	logger := t.logger(common.LoggerCategoryWorkOrder)

	verr := input.validate()
	if logID == 0 {
		verr.Add("maintenance_log_id", "is required")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	var order *models.WorkOrder
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.MaintenanceLog
		if err := tx.First(&parent, logID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("maintenance_log_id", fmt.Sprintf("maintenance log %d does not exist", logID))
			}
			return fmt.Errorf("load maintenance log %d: %w", logID, err)
		}

		created, err := t.insertWorkOrder(tx, &parent, input)
		order = created
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Work order created", zap.Reflect("work_order", order))
	return order, nil
}

func (t *Tracker) createWorkOrderWithLog(ctx context.Context, logInput LogInput, input WorkOrderInput) (*models.WorkOrder, error) {
	logger := t.logger(common.LoggerCategoryWorkOrder)

	verr := logInput.validate()
	for field, message := range input.validate().Fields {
		verr.Add(field, message)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	var order *models.WorkOrder
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent := t.newLog(logInput)
		if err := tx.Create(&parent).Error; err != nil {
			return fmt.Errorf("create maintenance log: %w", err)
		}

		created, err := t.insertWorkOrder(tx, &parent, input)
		order = created
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Work order created with maintenance log", zap.Reflect("work_order", order))
	return order, nil
}

func (t *Tracker) transitionStatus(ctx context.Context, id uint, status models.WorkOrderStatus) (*models.WorkOrder, error) {
	logger := t.logger(common.LoggerCategoryWorkOrder)

	if !status.Valid() {
		return nil, NewValidationError("new_status", "must be one of Pending, In Progress, Completed")
	}

	var order models.WorkOrder
	var previous models.WorkOrderStatus
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("MaintenanceLog").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "work order", ID: id}
			}
			return fmt.Errorf("load work order %d: %w", id, err)
		}

		previous = order.Status
		if previous == status {
			return nil
		}

		now := t.now()
		changes := map[string]any{"status": status, "updated_at": now}
		var completed *datatypes.Date
		if status == models.StatusCompleted {
			d := models.DateOf(now)
			completed = &d
			changes["completed_date"] = d
		} else {
			changes["completed_date"] = nil
		}

		if err := tx.Model(&models.WorkOrder{}).Where("id = ?", order.ID).Updates(changes).Error; err != nil {
			return fmt.Errorf("update work order %d status: %w", id, err)
		}
		order.Status = status
		order.CompletedDate = completed
		order.UpdatedAt = now

		if ShouldNotifyTransition(order.IsCritical, status) {
			description := ""
			if order.MaintenanceLog != nil {
				description = order.MaintenanceLog.Description
			}
			if _, err := t.emitNotification(tx, order.ID, TransitionMessage(order.ID, status, description)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous == status {
		logger.Info("Work order status unchanged", zap.Uint("id", id), zap.String("status", string(status)))
	} else {
		logger.Info("Work order status changed",
			zap.Uint("id", id),
			zap.String("from", string(previous)),
			zap.String("to", string(status)))
	}
	return &order, nil
}

func (t *Tracker) updateWorkOrder(ctx context.Context, id uint, input WorkOrderUpdate) (*models.WorkOrder, error) {
	logger := t.logger(common.LoggerCategoryWorkOrder)

	changes, verr := input.changes()
	if verr.HasErrors() {
		return nil, verr
	}

	var order models.WorkOrder
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "work order", ID: id}
			}
			return fmt.Errorf("load work order %d: %w", id, err)
		}
		if len(changes) == 0 {
			return tx.Preload("MaintenanceLog").First(&order, id).Error
		}

		changes["updated_at"] = t.now()
		if err := tx.Model(&models.WorkOrder{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return fmt.Errorf("update work order %d: %w", id, err)
		}
		order = models.WorkOrder{}
		return tx.Preload("MaintenanceLog").First(&order, id).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Work order updated", zap.Uint("id", id), zap.Int("fields", len(changes)))
	return &order, nil
}

func (t *Tracker) getWorkOrder(ctx context.Context, id uint) (*models.WorkOrder, error) {
	var order models.WorkOrder
	if err := t.Db.Conn.WithContext(ctx).Preload("MaintenanceLog").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "work order", ID: id}
		}
		return nil, fmt.Errorf("get work order %d: %w", id, err)
	}
	return &order, nil
}

func (t *Tracker) queryWorkOrders(ctx context.Context, query WorkOrderQuery) ([]models.WorkOrder, error) {
	if verr := query.validate(); verr.HasErrors() {
		return nil, verr
	}

	q := t.Db.Conn.WithContext(ctx).
		Model(&models.WorkOrder{}).
		Select("work_orders.*").
		Preload("MaintenanceLog")

	if query.MaintenanceClass != "" {
		q = q.Joins("JOIN maintenance_logs ON maintenance_logs.id = work_orders.maintenance_log_id").
			Where("maintenance_logs.maintenance_class = ?", string(query.MaintenanceClass))
	}
	if query.ScheduledFrom != nil {
		q = q.Where("work_orders.scheduled_date >= ?", *query.ScheduledFrom)
	}
	if query.ScheduledTo != nil {
		q = q.Where("work_orders.scheduled_date <= ?", *query.ScheduledTo)
	}
	if len(query.Statuses) > 0 {
		q = q.Where("work_orders.status IN ?", common.StringsOf(query.Statuses))
	}
	if len(query.Priorities) > 0 {
		q = q.Where("work_orders.priority IN ?", common.StringsOf(query.Priorities))
	}
	if needle := strings.TrimSpace(query.AssignedTo); needle != "" {
		q = q.Where("LOWER(work_orders.assigned_to) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(needle))+"%")
	}
	if query.CriticalOnly != nil {
		q = q.Where("work_orders.is_critical = ?", *query.CriticalOnly)
	}

	direction := " ASC"
	if query.SortDesc {
		direction = " DESC"
	}
	switch query.SortBy {
	case SortScheduledDate:
		q = q.Order("work_orders.scheduled_date" + direction).Order("work_orders.id ASC")
	case SortStatus:
		q = q.Order(rankExpr("work_orders.status", common.StringsOf(models.WorkOrderStatuses)) + direction).
			Order("work_orders.id ASC")
	case SortPriority:
		q = q.Order(rankExpr("work_orders.priority", common.StringsOf(models.Priorities)) + direction).
			Order("work_orders.id ASC")
	default:
		q = q.Order("work_orders.id DESC")
	}

	var orders []models.WorkOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("query work orders: %w", err)
	}
	return orders, nil
}

type IWorkOrderImpl struct {
	tracker *Tracker
}

func (iw *IWorkOrderImpl) CreateWorkOrder(ctx context.Context, logID uint, input WorkOrderInput) (*models.WorkOrder, error) {
	return iw.tracker.createWorkOrder(ctx, logID, input)
}

func (iw *IWorkOrderImpl) CreateWorkOrderWithLog(ctx context.Context, logInput LogInput, input WorkOrderInput) (*models.WorkOrder, error) {
	return iw.tracker.createWorkOrderWithLog(ctx, logInput, input)
}

func (iw *IWorkOrderImpl) UpdateWorkOrder(ctx context.Context, id uint, input WorkOrderUpdate) (*models.WorkOrder, error) {
	return iw.tracker.updateWorkOrder(ctx, id, input)
}

func (iw *IWorkOrderImpl) TransitionStatus(ctx context.Context, id uint, status models.WorkOrderStatus) (*models.WorkOrder, error) {
	return iw.tracker.transitionStatus(ctx, id, status)
}

func (iw *IWorkOrderImpl) GetWorkOrder(ctx context.Context, id uint) (*models.WorkOrder, error) {
	return iw.tracker.getWorkOrder(ctx, id)
}

func (iw *IWorkOrderImpl) QueryWorkOrders(ctx context.Context, query WorkOrderQuery) ([]models.WorkOrder, error) {
	return iw.tracker.queryWorkOrders(ctx, query)
}

func (t *Tracker) GetIWorkOrder() IWorkOrder {
	return &IWorkOrderImpl{tracker: t}
}
