package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskr/internal/errors"
	"taskr/internal/model"
	"taskr/internal/repository"
)

// TaskService orchestrates task mutations. Every mutation resolves
// existence first, then ownership, and only then touches the repository,
// so a rejected request never leaves a partial write.
type TaskService interface {
	AddTask(ctx context.Context, ownerID uint, name string, dueDate time.Time, priority int) (*model.Task, error)
	CompleteTask(ctx context.Context, actingUserID, taskID uint) error
	DeleteTask(ctx context.Context, actingUserID, taskID uint) error
	OpenTasks(ctx context.Context) ([]model.Task, error)
	ClosedTasks(ctx context.Context) ([]model.Task, error)
}

type taskService struct {
	taskRepo  repository.TaskRepository
	validator *taskValidator
	onMutate  func(ctx context.Context)
}

// NewTaskService creates a new task service. onMutate, if non-nil, is
// invoked after every successful mutation (used to invalidate the read
// API's cached pages).
func NewTaskService(taskRepo repository.TaskRepository, onMutate func(ctx context.Context)) TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		validator: newTaskValidator(),
		onMutate:  onMutate,
	}
}

// AddTask validates input and creates an open task owned by ownerID with
// the posted date set to now. On validation failure no row is created.
func (s *taskService) AddTask(ctx context.Context, ownerID uint, name string, dueDate time.Time, priority int) (*model.Task, error) {
	if err := s.validator.ValidateNewTask(name, dueDate, priority); err != nil {
		return nil, err
	}

	task := &model.Task{
		Name:       name,
		DueDate:    dueDate,
		Priority:   priority,
		PostedDate: time.Now(),
		Status:     model.StatusOpen,
		OwnerID:    ownerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.notifyMutate(ctx)
	return task, nil
}

// CompleteTask moves an open task to closed. The transition is
// one-directional; there is no reopen operation.
func (s *taskService) CompleteTask(ctx context.Context, actingUserID, taskID uint) error {
	task, err := s.resolve(ctx, taskID)
	if err != nil {
		return err
	}
	if err := authorize(actingUserID, task, actionComplete); err != nil {
		return err
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, model.StatusClosed); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	s.notifyMutate(ctx)
	return nil
}

// DeleteTask removes a task permanently.
func (s *taskService) DeleteTask(ctx context.Context, actingUserID, taskID uint) error {
	task, err := s.resolve(ctx, taskID)
	if err != nil {
		return err
	}
	if err := authorize(actingUserID, task, actionDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.notifyMutate(ctx)
	return nil
}

func (s *taskService) OpenTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListOpen(ctx)
}

func (s *taskService) ClosedTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListClosed(ctx)
}

func (s *taskService) resolve(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) notifyMutate(ctx context.Context) {
	if s.onMutate != nil {
		s.onMutate(ctx)
	}
}
