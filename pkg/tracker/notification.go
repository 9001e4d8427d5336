package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

// emitNotification must run inside the transaction that changed the work order, so the
// notification commits or rolls back with it.
func (t *Tracker) emitNotification(tx *gorm.DB, workOrderID uint, message string) (*models.Notification, error) {
	logger := t.logger(common.LoggerCategoryNotification)

	n := models.Notification{
		WorkOrderID: workOrderID,
		Message:     message,
		CreatedAt:   t.now(),
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("create notification for work order %d: %w", workOrderID, err)
	}

	logger.Debug("Notification queued", zap.Uint("work_order_id", workOrderID), zap.String("message", message))
	return &n, nil
}

func (t *Tracker) acknowledgeNotification(ctx context.Context, id uint) (*models.Notification, error) {
	logger := t.logger(common.LoggerCategoryNotification)

	var n models.Notification
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&n, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "notification", ID: id}
			}
			return fmt.Errorf("load notification %d: %w", id, err)
		}
		if n.IsRead {
			return nil
		}

		now := t.now()
		if err := tx.Model(&models.Notification{}).Where("id = ?", id).
			Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
			return fmt.Errorf("acknowledge notification %d: %w", id, err)
		}
		n.IsRead = true
		n.ReadAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Notification acknowledged", zap.Uint("id", id))
	return &n, nil
}

func (t *Tracker) listNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	q := t.Db.Conn.WithContext(ctx).Model(&models.Notification{})
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := q.Order("created_at desc").Order("id desc").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (t *Tracker) countUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := t.Db.Conn.WithContext(ctx).Model(&models.Notification{}).
		Where("is_read = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

type INotificationImpl struct {
	tracker *Tracker
}

func (in *INotificationImpl) AcknowledgeNotification(ctx context.Context, id uint) (*models.Notification, error) {
	return in.tracker.acknowledgeNotification(ctx, id)
}

func (in *INotificationImpl) ListNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	return in.tracker.listNotifications(ctx, unreadOnly)
}

func (in *INotificationImpl) CountUnread(ctx context.Context) (int64, error) {
	return in.tracker.countUnread(ctx)
}

func (t *Tracker) GetINotification() INotification {
	return &INotificationImpl{tracker: t}
}
