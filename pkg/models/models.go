package models

import (
	"time"

	"gorm.io/datatypes"
)

type MaintenanceClass string

const (
	MaintenanceClass3MTR     MaintenanceClass = "3MTR"
	MaintenanceClassIAS      MaintenanceClass = "IAS"
	MaintenanceClassSupplier MaintenanceClass = "Supplier"
)

var MaintenanceClasses = []MaintenanceClass{MaintenanceClass3MTR, MaintenanceClassIAS, MaintenanceClassSupplier}

func (c MaintenanceClass) Valid() bool {
	for _, known := range MaintenanceClasses {
		if c == known {
			return true
		}
	}
	return false
}

type WorkOrderStatus string

const (
	StatusPending    WorkOrderStatus = "Pending"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusCompleted  WorkOrderStatus = "Completed"
)

// WorkOrderStatuses is ordered by lifecycle rank, which is also the sort order for status.
var WorkOrderStatuses = []WorkOrderStatus{StatusPending, StatusInProgress, StatusCompleted}

func (s WorkOrderStatus) Valid() bool {
	for _, known := range WorkOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities is ordered by urgency, which is also the sort order for priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

type Company struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	LogoURL     string    `gorm:"size:255" json:"logo_url"`
	ContactInfo string    `gorm:"type:text" json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MaintenanceLog struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Date             datatypes.Date   `gorm:"not null;index" json:"date"`
	LotNumber        string           `gorm:"size:50;not null" json:"lot_number"`
	ContactDetails   string           `gorm:"size:255;not null" json:"contact_details"`
	MaintenanceClass MaintenanceClass `gorm:"type:varchar(50);not null;index" json:"maintenance_class"`
	Description      string           `gorm:"type:text;not null" json:"description"`
	Allocation       string           `gorm:"size:100;not null" json:"allocation"`
	CreatedAt        time.Time        `json:"created_at"`
}

type WorkOrder struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	MaintenanceLogID uint            `gorm:"not null;index" json:"maintenance_log_id"`
	Status           WorkOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AssignedTo       string          `gorm:"size:100" json:"assigned_to"`
	ScheduledDate    datatypes.Date  `gorm:"index" json:"scheduled_date"`
	CompletedDate    *datatypes.Date `gorm:"index" json:"completed_date"`
	Priority         Priority        `gorm:"type:varchar(20);not null" json:"priority"`
	Notes            string          `gorm:"type:text" json:"notes"`
	IsCritical       bool            `gorm:"not null;default:false;index" json:"is_critical"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	MaintenanceLog *MaintenanceLog `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"maintenance_log,omitempty"`
}

type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkOrderID uint       `gorm:"not null;index" json:"work_order_id"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	IsRead      bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`

	WorkOrder *WorkOrder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"work_order,omitempty"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// All lists every persisted model in dependency order, for migrations.
func All() []any {
	return []any{&Company{}, &MaintenanceLog{}, &WorkOrder{}, &Notification{}, &User{}}
}
