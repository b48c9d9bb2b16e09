package repository

import (
	"context"
	"errors"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domainRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	var task entity.Task
	err := dbFrom(ctx, r.db).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *taskRepository) IsMember(ctx context.Context, taskID, ticketID int64) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.TaskTicket{}).
		Where("task_id = ? AND ticket_id = ?", taskID, ticketID).
		Count(&count).Error
	return count > 0, err
}

func (r *taskRepository) SetDocument(ctx context.Context, taskID int64, documentID *int64) error {
	return dbFrom(ctx, r.db).Model(&entity.Task{}).
		Where("id = ?", taskID).
		Update("document_id", documentID).Error
}

func (r *taskRepository) CountTickets(ctx context.Context, taskID int64) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.TaskTicket{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) RecomputeProgress(ctx context.Context, taskID int64) error {
	return dbFrom(ctx, r.db).Exec(`
		UPDATE tasks SET progress = (
			SELECT COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE t.status IN (1, 2, 3)) / NULLIF(COUNT(*), 0)), 0)
			FROM task_tickets tt
			JOIN tickets t ON t.id = tt.ticket_id
			WHERE tt.task_id = ?
		)
		WHERE id = ?`, taskID, taskID).Error
}

func (r *taskRepository) DeleteWithNotifications(ctx context.Context, taskID int64) error {
	db := dbFrom(ctx, r.db)
	if err := db.Delete(&entity.TaskNotification{}, "task_id = ?", taskID).Error; err != nil {
		return err
	}
	if err := db.Delete(&entity.TaskTicket{}, "task_id = ?", taskID).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Task{}, "id = ?", taskID).Error
}
