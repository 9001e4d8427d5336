package tracker

import (
	"fmt"

	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

const (
	Ellipsis = "..."

	// NotificationExcerptLen bounds how much of a log description a notification repeats.
	NotificationExcerptLen = 50
)

// Truncate returns the first max runes of text followed by Ellipsis, or text itself when it
// already fits.
func Truncate(text string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + Ellipsis
}

func CreationMessage(description string) string {
	return "Critical work order created: " + Truncate(description, NotificationExcerptLen)
}

func TransitionMessage(workOrderID uint, status models.WorkOrderStatus, description string) string {
	return fmt.Sprintf("Critical work order #%d is now %s: %s",
		workOrderID, status, Truncate(description, NotificationExcerptLen))
}

// ShouldNotifyTransition reports whether moving a work order into status raises a notification.
func ShouldNotifyTransition(isCritical bool, status models.WorkOrderStatus) bool {
	return isCritical && (status == models.StatusInProgress || status == models.StatusCompleted)
}
