package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

const (
	DefaultWindowDays = 30
	MaxWindowDays     = 365
)

type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

type CompletionRate struct {
	Days      int     `json:"days"`
	Total     int64   `json:"total"`
	Completed int64   `json:"completed"`
	Rate      float64 `json:"rate"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func validateWindow(days int) *ValidationError {
	if days < 1 || days > MaxWindowDays {
		return NewValidationError("days", fmt.Sprintf("must be between 1 and %d", MaxWindowDays))
	}
	return nil
}

// windowStart is the first day of a window of days ending today, inclusive.
func windowStart(today datatypes.Date, days int) datatypes.Date {
	return models.DateOf(time.Time(today).AddDate(0, 0, -(days - 1)))
}

func (t *Tracker) statusCounts(ctx context.Context) (*StatusCounts, error) {
	var rows []struct {
		Status models.WorkOrderStatus
		Count  int64
	}
	if err := t.Db.Conn.WithContext(ctx).Model(&models.WorkOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count work orders by status: %w", err)
	}

	counts := &StatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.StatusPending:
			counts.Pending = row.Count
		case models.StatusInProgress:
			counts.InProgress = row.Count
		case models.StatusCompleted:
			counts.Completed = row.Count
		}
	}
	return counts, nil
}

func (t *Tracker) completionRate(ctx context.Context, days int) (*CompletionRate, error) {
	if verr := validateWindow(days); verr != nil {
		return nil, verr
	}

	since := time.Time(windowStart(models.DateOf(t.now()), days))
	result := &CompletionRate{Days: days}

	base := t.Db.Conn.WithContext(ctx).Model(&models.WorkOrder{}).Where("created_at >= ?", since)
	if err := base.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return nil, fmt.Errorf("count work orders in window: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusCompleted).
		Count(&result.Completed).Error; err != nil {
		return nil, fmt.Errorf("count completed work orders in window: %w", err)
	}

	if result.Total > 0 {
		result.Rate = math.Round(float64(result.Completed)/float64(result.Total)*10000) / 100
	}
	return result, nil
}

func (t *Tracker) completionTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	logger := t.logger(common.LoggerCategoryStats)

	if verr := validateWindow(days); verr != nil {
		return nil, verr
	}

	today := models.DateOf(t.now())
	start := windowStart(today, days)

	var completed []models.WorkOrder
	if err := t.Db.Conn.WithContext(ctx).Model(&models.WorkOrder{}).
		Select("id", "completed_date").
		Where("status = ?", models.StatusCompleted).
		Where("completed_date >= ? AND completed_date <= ?", start, today).
		Find(&completed).Error; err != nil {
		return nil, fmt.Errorf("load completed work orders: %w", err)
	}

	perDay := map[string]int{}
	for _, order := range completed {
		if order.CompletedDate == nil {
			continue
		}
		perDay[models.FormatDate(*order.CompletedDate)]++
	}

	trend := make([]TrendPoint, days)
	for i := 0; i < days; i++ {
		date := models.FormatDate(models.DateOf(time.Time(start).AddDate(0, 0, i)))
		trend[i] = TrendPoint{Date: date, Count: perDay[date]}
	}

	logger.Debug("Completion trend computed",
		zap.Int("days", days),
		zap.Int("completed", len(completed)))
	return trend, nil
}

type IStatsImpl struct {
	tracker *Tracker
}

func (is *IStatsImpl) StatusCounts(ctx context.Context) (*StatusCounts, error) {
	return is.tracker.statusCounts(ctx)
}

func (is *IStatsImpl) CompletionRate(ctx context.Context, days int) (*CompletionRate, error) {
	return is.tracker.completionRate(ctx, days)
}

func (is *IStatsImpl) CompletionTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	return is.tracker.completionTrend(ctx, days)
}

func (t *Tracker) GetIStats() IStats {
	return &IStatsImpl{tracker: t}
}
