package repository

import (
	"context"

	"gorm.io/gorm"

	"taskr/internal/model"
)

// TaskRepository defines task persistence operations.
//
// UpdateStatus and Delete are no-ops on a missing id: callers that need a
// hard failure are expected to have resolved existence via FindByID first.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListOpen(ctx context.Context) ([]model.Task, error)
	ListClosed(ctx context.Context) ([]model.Task, error)
	List(ctx context.Context, limit, offset int) ([]model.Task, error)
	UpdateStatus(ctx context.Context, id uint, status int) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListOpen returns pending tasks ordered by ascending due date, insertion
// order breaking ties.
func (r *taskRepository) ListOpen(ctx context.Context) ([]model.Task, error) {
	return r.listByStatus(ctx, model.StatusOpen)
}

// ListClosed returns completed tasks ordered by ascending due date,
// insertion order breaking ties.
func (r *taskRepository) ListClosed(ctx context.Context) ([]model.Task, error) {
	return r.listByStatus(ctx, model.StatusClosed)
}

func (r *taskRepository) listByStatus(ctx context.Context, status int) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List returns a page of all tasks regardless of status or owner.
func (r *taskRepository) List(ctx context.Context, limit, offset int) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id uint, status int) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
