package service

import (
	"context"

	"taskpad/internal/tasks/data"
)

// TaskService defines the remote task operations. Every returned task is the
// server's canonical representation and replaces whatever the caller held before.
type TaskService interface {
	List(ctx context.Context) ([]data.Task, error)
	Create(ctx context.Context, task data.NewTask) (data.Task, error)
	Update(ctx context.Context, task data.Task) (data.Task, error)
	Delete(ctx context.Context, id data.ID) error
}
