package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskr/internal/errors"
	"taskr/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListOpen(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListClosed(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, limit, offset int) ([]model.Task, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uint, status int) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTaskService_AddTask(t *testing.T) {
	dueDate := time.Date(2019, 1, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		taskName      string
		dueDate       time.Time
		priority      int
		setupMock     func(*MockTaskRepository)
		expectedField string
	}{
		{
			name:     "successful add",
			taskName: "Go to the bank",
			dueDate:  dueDate,
			priority: 1,
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
		},
		{
			name:          "empty name",
			taskName:      "  ",
			dueDate:       dueDate,
			priority:      1,
			setupMock:     func(m *MockTaskRepository) {},
			expectedField: "name",
		},
		{
			name:          "missing due date",
			taskName:      "Go to the bank",
			dueDate:       time.Time{},
			priority:      1,
			setupMock:     func(m *MockTaskRepository) {},
			expectedField: "due_date",
		},
		{
			name:          "priority below range",
			taskName:      "Go to the bank",
			dueDate:       dueDate,
			priority:      0,
			setupMock:     func(m *MockTaskRepository) {},
			expectedField: "priority",
		},
		{
			name:          "priority above range",
			taskName:      "Go to the bank",
			dueDate:       dueDate,
			priority:      11,
			setupMock:     func(m *MockTaskRepository) {},
			expectedField: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.AddTask(context.Background(), 1, tt.taskName, tt.dueDate, tt.priority)

			if tt.expectedField != "" {
				var vErr *errors.ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.expectedField, vErr.Field)
				assert.Nil(t, task)
				// Validation failure must not create a row.
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				assert.Equal(t, model.StatusOpen, task.Status)
				assert.Equal(t, uint(1), task.OwnerID)
				assert.Equal(t, tt.dueDate, task.DueDate)
				assert.False(t, task.PostedDate.IsZero())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_CompleteTask(t *testing.T) {
	ownedTask := &model.Task{ID: 5, Name: "Go to the bank", Status: model.StatusOpen, OwnerID: 1}

	tests := []struct {
		name          string
		actingUserID  uint
		taskID        uint
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:         "owner completes task",
			actingUserID: 1,
			taskID:       5,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)
				m.On("UpdateStatus", mock.Anything, uint(5), model.StatusClosed).Return(nil)
			},
		},
		{
			name:         "non-owner is rejected",
			actingUserID: 2,
			taskID:       5,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)
			},
			expectedError: errors.ErrForbiddenUpdate,
		},
		{
			name:         "missing task",
			actingUserID: 1,
			taskID:       209,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(209)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			err := service.CompleteTask(context.Background(), tt.actingUserID, tt.taskID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				// A rejected request must leave state unchanged.
				mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	ownedTask := &model.Task{ID: 5, Name: "Go to the bank", Status: model.StatusOpen, OwnerID: 1}

	tests := []struct {
		name          string
		actingUserID  uint
		taskID        uint
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:         "owner deletes task",
			actingUserID: 1,
			taskID:       5,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)
				m.On("Delete", mock.Anything, uint(5)).Return(nil)
			},
		},
		{
			name:         "non-owner is rejected",
			actingUserID: 2,
			taskID:       5,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)
			},
			expectedError: errors.ErrForbiddenDelete,
		},
		{
			name:         "missing task",
			actingUserID: 1,
			taskID:       209,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(209)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			err := service.DeleteTask(context.Background(), tt.actingUserID, tt.taskID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_ForbiddenMessagesDistinguishAction(t *testing.T) {
	task := &model.Task{ID: 5, OwnerID: 1}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(task, nil)

	service := NewTaskService(mockRepo, nil)

	completeErr := service.CompleteTask(context.Background(), 2, 5)
	deleteErr := service.DeleteTask(context.Background(), 2, 5)

	assert.EqualError(t, completeErr, "You can only update tasks that belong to you.")
	assert.EqualError(t, deleteErr, "You can only delete tasks that belong to you.")
	assert.NotEqual(t, completeErr, deleteErr)
}

func TestTaskService_MutationsNotifyCacheInvalidation(t *testing.T) {
	task := &model.Task{ID: 5, OwnerID: 1, Status: model.StatusOpen}
	dueDate := time.Date(2019, 1, 30, 0, 0, 0, 0, time.UTC)

	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(task, nil)
	mockRepo.On("UpdateStatus", mock.Anything, uint(5), model.StatusClosed).Return(nil)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	invalidations := 0
	service := NewTaskService(mockRepo, func(ctx context.Context) { invalidations++ })

	_, err := service.AddTask(context.Background(), 1, "Go to the bank", dueDate, 1)
	assert.NoError(t, err)
	assert.NoError(t, service.CompleteTask(context.Background(), 1, 5))
	assert.NoError(t, service.DeleteTask(context.Background(), 1, 5))

	assert.Equal(t, 3, invalidations)
}

func TestTaskService_ListPassThrough(t *testing.T) {
	open := []model.Task{{ID: 1, Status: model.StatusOpen}}
	closed := []model.Task{{ID: 2, Status: model.StatusClosed}}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListOpen", mock.Anything).Return(open, nil)
	mockRepo.On("ListClosed", mock.Anything).Return(closed, nil)

	service := NewTaskService(mockRepo, nil)

	gotOpen, err := service.OpenTasks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, open, gotOpen)

	gotClosed, err := service.ClosedTasks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, closed, gotClosed)

	mockRepo.AssertExpectations(t)
}
