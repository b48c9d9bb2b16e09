package entity

import "time"

// Task is a work assignment grouping tickets. The task subsystem owns its
// own workflow; this core only reads membership and maintains the generated
// document reference and progress. A task with zero member tickets is an
// invalid state and is deleted together with its notifications.
type Task struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	CompanyID  int64     `gorm:"not null;index" json:"company_id"`
	Name       string    `gorm:"size:255" json:"name"`
	DocumentID *int64    `gorm:"index" json:"document_id,omitempty"`
	Progress   int       `gorm:"default:0" json:"progress"` // percent of member tickets consolidated
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Tickets []TaskTicket `gorm:"foreignKey:TaskID" json:"tickets,omitempty"`
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// TaskTicket associates one ticket with a task. A ticket belongs to at
// most one task at a time.
type TaskTicket struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	TaskID   int64 `gorm:"not null;index" json:"task_id"`
	TicketID int64 `gorm:"not null;uniqueIndex" json:"ticket_id"`
}

// TableName returns the table name for the TaskTicket model
func (TaskTicket) TableName() string {
	return "task_tickets"
}

// TaskNotification is a pending user notification attached to a task.
type TaskNotification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TaskID    int64     `gorm:"not null;index" json:"task_id"`
	Message   string    `gorm:"size:500" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the TaskNotification model
func (TaskNotification) TableName() string {
	return "task_notifications"
}
