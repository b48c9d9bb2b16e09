package repository

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
)

// TaskRepository is the state contract with the task subsystem. This core
// consults membership and maintains the generated-document reference and
// progress; the task workflow itself lives elsewhere.
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	// IsMember reports whether the ticket is currently assigned to the task.
	IsMember(ctx context.Context, taskID, ticketID int64) (bool, error)
	// SetDocument records (or clears, with nil) the document generated from
	// the task.
	SetDocument(ctx context.Context, taskID int64, documentID *int64) error
	CountTickets(ctx context.Context, taskID int64) (int64, error)
	// RecomputeProgress recalculates the task's progress as the share of
	// member tickets already consolidated.
	RecomputeProgress(ctx context.Context, taskID int64) error
	// DeleteWithNotifications removes the task, its ticket associations and
	// its notifications.
	DeleteWithNotifications(ctx context.Context, taskID int64) error
}
