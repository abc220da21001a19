package service

import (
	"context"
	"fmt"
	"sync"

	"recurring-planner/internal/model"
)

// memTaskStore is an in-memory TaskStore for tests.
type memTaskStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[string]model.Task)}
}

func (m *memTaskStore) Create(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; ok {
		return fmt.Errorf("duplicate id %s", task.ID)
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) Save(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) FindByID(_ context.Context, userID, taskID string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	return &task, nil
}

func (m *memTaskStore) ListByUser(_ context.Context, userID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTaskStore) ListPending(_ context.Context, userID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Task
	for _, t := range m.tasks {
		if t.UserID == userID && (t.IsTemplate() || !t.IsDone()) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTaskStore) Delete(_ context.Context, userID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[taskID]; ok && t.UserID == userID {
		delete(m.tasks, taskID)
	}
	return nil
}

// memCategoryStore is an in-memory CategoryStore for tests.
type memCategoryStore struct {
	mu     sync.Mutex
	nextID uint
	cats   map[uint]model.Category
}

func newMemCategoryStore() *memCategoryStore {
	return &memCategoryStore{cats: make(map[uint]model.Category)}
}

func (m *memCategoryStore) GetOrCreate(_ context.Context, userID string, name string) (*model.Category, error) {
	if name == "" {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cats {
		if c.UserID == userID && c.Name == name {
			return &c, nil
		}
	}
	m.nextID++
	cat := model.Category{ID: m.nextID, UserID: userID, Name: name}
	m.cats[cat.ID] = cat
	return &cat, nil
}

func (m *memCategoryStore) ListByUser(_ context.Context, userID string) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Category
	for _, c := range m.cats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
