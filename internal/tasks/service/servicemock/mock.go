package servicemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskpad/internal/tasks/data"
	"taskpad/internal/tasks/service"
)

var _ service.TaskService = (*MockTaskService)(nil)

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context) ([]data.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]data.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, task data.NewTask) (data.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(data.Task)
	return created, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, task data.Task) (data.Task, error) {
	args := m.Called(ctx, task)
	updated, _ := args.Get(0).(data.Task)
	return updated, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id data.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
