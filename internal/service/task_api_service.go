package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskr/internal/cache"
	"taskr/internal/errors"
	"taskr/internal/model"
	"taskr/internal/repository"
)

const (
	// DefaultListLimit is the page size applied when no limit is given.
	DefaultListLimit = 10

	taskListCacheKey = "api:tasks:default"
	taskListCacheTTL = 5 * time.Minute
	dateLayout       = "2006-01-02"
)

// TaskView is the read-only projection served by the public API. Field
// names match the wire format existing consumers depend on.
type TaskView struct {
	TaskID     uint   `json:"task_id"`
	Name       string `json:"task name"`
	DueDate    string `json:"due date"`
	Priority   int    `json:"priority"`
	PostedDate string `json:"posted date"`
	Status     int    `json:"status"`
	UserID     uint   `json:"user id"`
}

// NewTaskView projects a stored task into its external shape.
func NewTaskView(task *model.Task) TaskView {
	return TaskView{
		TaskID:     task.ID,
		Name:       task.Name,
		DueDate:    task.DueDate.Format(dateLayout),
		Priority:   task.Priority,
		PostedDate: task.PostedDate.Format(dateLayout),
		Status:     task.Status,
		UserID:     task.OwnerID,
	}
}

// TaskAPIService is the read-only API over tasks. It applies no ownership
// filtering: the API is public by contract.
type TaskAPIService interface {
	ListTasks(ctx context.Context, limit, offset int) ([]TaskView, error)
	GetTask(ctx context.Context, id uint) (*TaskView, error)
	// InvalidateCache drops the cached default page after a task mutation.
	InvalidateCache(ctx context.Context)
}

type taskAPIService struct {
	taskRepo repository.TaskRepository
	cache    *cache.Client
}

// NewTaskAPIService creates a new read API service.
func NewTaskAPIService(taskRepo repository.TaskRepository, cache *cache.Client) TaskAPIService {
	return &taskAPIService{taskRepo: taskRepo, cache: cache}
}

// ListTasks returns a page of task views. The default page (limit 10,
// offset 0) is served cache-aside; other pages always hit the store.
func (s *taskAPIService) ListTasks(ctx context.Context, limit, offset int) ([]TaskView, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	defaultPage := limit == DefaultListLimit && offset == 0
	if defaultPage {
		if data, _ := s.cache.Get(ctx, taskListCacheKey); data != nil {
			var cached []TaskView
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	tasks, err := s.taskRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, NewTaskView(&tasks[i]))
	}

	if defaultPage {
		if payload, err := json.Marshal(views); err == nil {
			_ = s.cache.Set(ctx, taskListCacheKey, payload, taskListCacheTTL)
		}
	}
	return views, nil
}

// GetTask returns a single task view, or ErrTaskNotFound. A miss is a
// structured result for the transport layer, never a raw store error.
func (s *taskAPIService) GetTask(ctx context.Context, id uint) (*TaskView, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	view := NewTaskView(task)
	return &view, nil
}

func (s *taskAPIService) InvalidateCache(ctx context.Context) {
	_ = s.cache.Delete(ctx, taskListCacheKey)
}
