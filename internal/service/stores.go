package service

import (
	"context"

	"recurring-planner/internal/model"
)

// TaskStore is the slice of the persistence layer the services need.
// *repository.TaskRepository satisfies it; tests use an in-memory fake.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, userID, taskID string) (*model.Task, error)
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	ListPending(ctx context.Context, userID string) ([]model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// CategoryStore resolves category names to records.
type CategoryStore interface {
	GetOrCreate(ctx context.Context, userID string, name string) (*model.Category, error)
	ListByUser(ctx context.Context, userID string) ([]model.Category, error)
}
