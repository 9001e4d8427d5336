// Package tracker is the work-order lifecycle and notification engine. Presentation layers
// (HTTP, gRPC, CLI) call into a *Tracker; it owns every write to the store.
package tracker

//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

type ILog interface {
	CreateLog(ctx context.Context, input LogInput) (*models.MaintenanceLog, error)
	GetLog(ctx context.Context, id uint) (*models.MaintenanceLog, error)
	ListLogs(ctx context.Context, filter LogFilter) ([]models.MaintenanceLog, error)
}

type IWorkOrder interface {
	CreateWorkOrder(ctx context.Context, logID uint, input WorkOrderInput) (*models.WorkOrder, error)
	CreateWorkOrderWithLog(ctx context.Context, logInput LogInput, input WorkOrderInput) (*models.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, id uint, input WorkOrderUpdate) (*models.WorkOrder, error)
	TransitionStatus(ctx context.Context, id uint, status models.WorkOrderStatus) (*models.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id uint) (*models.WorkOrder, error)
	QueryWorkOrders(ctx context.Context, query WorkOrderQuery) ([]models.WorkOrder, error)
}

type INotification interface {
	AcknowledgeNotification(ctx context.Context, id uint) (*models.Notification, error)
	ListNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	CountUnread(ctx context.Context) (int64, error)
}

type IStats interface {
	StatusCounts(ctx context.Context) (*StatusCounts, error)
	CompletionRate(ctx context.Context, days int) (*CompletionRate, error)
	CompletionTrend(ctx context.Context, days int) ([]TrendPoint, error)
}

type ICompany interface {
	UpsertCompany(ctx context.Context, input CompanyInput) (*models.Company, error)
	GetCompany(ctx context.Context) (*models.Company, error)
}

type IUser interface {
	RegisterUser(ctx context.Context, input UserInput) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type Tracker struct {
	Db db.DB
	// Now is the clock used for completion dates, creation stamps and windows.
	Now func() time.Time

	Log          ILog
	WorkOrder    IWorkOrder
	Notification INotification
	Stats        IStats
	Company      ICompany
	User         IUser
}

type ServiceOpts struct {
	Log          ILog
	WorkOrder    IWorkOrder
	Notification INotification
	Stats        IStats
	Company      ICompany
	User         IUser
}

// New wires a Tracker with its default service implementations over database.
func New(database *db.DB) *Tracker {
	t := &Tracker{Db: *database}
	t.WithServices(ServiceOpts{
		Log:          t.GetILog(),
		WorkOrder:    t.GetIWorkOrder(),
		Notification: t.GetINotification(),
		Stats:        t.GetIStats(),
		Company:      t.GetICompany(),
		User:         t.GetIUser(),
	})
	return t
}

func (t *Tracker) WithServices(opts ServiceOpts) *Tracker {
	if opts.Log != nil {
		t.Log = opts.Log
	}
	if opts.WorkOrder != nil {
		t.WorkOrder = opts.WorkOrder
	}
	if opts.Notification != nil {
		t.Notification = opts.Notification
	}
	if opts.Stats != nil {
		t.Stats = opts.Stats
	}
	if opts.Company != nil {
		t.Company = opts.Company
	}
	if opts.User != nil {
		t.User = opts.User
	}
	return t
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now().UTC()
	}
	return time.Now().UTC()
}

// Clock exposes the tracker's notion of now to presentation code, e.g. report timestamps.
func (t *Tracker) Clock() time.Time {
	return t.now()
}

func (t *Tracker) logger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameTracker,
		zap.String(common.LoggerFieldCategory, category),
	)
}
