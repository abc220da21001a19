package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recurring-planner/internal/model"
	"recurring-planner/internal/recurrence"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    model.Priority
	Deadline    *time.Time
	Pinned      bool

	// Recurrence fields; RecurKind other than "none" turns the task into a
	// template. The time-of-day of Deadline becomes the canonical clock time
	// of every generated occurrence.
	RecurKind     string
	RecurInterval int
	RecurWeekdays []time.Weekday
	RecurDay      int
	RecurWeek     int
	HorizonUnit   string
	HorizonValue  int
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks      TaskStore
	categories CategoryStore
}

func NewTaskService(tasks TaskStore, categories CategoryStore) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	var categoryID *uint
	if input.Category != "" {
		category, err := s.categories.GetOrCreate(ctx, user.ID, input.Category)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryID = &category.ID
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		CategoryID:  categoryID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      model.StatusNew,
		Pinned:      input.Pinned,
		Deadline:    input.Deadline,
		RecurKind:   model.RecurNone,
	}

	if input.RecurKind != "" && input.RecurKind != model.RecurNone {
		task.RecurKind = input.RecurKind
		task.RecurInterval = input.RecurInterval
		task.RecurWeekdays = recurrence.FormatWeekdays(input.RecurWeekdays)
		task.RecurDay = input.RecurDay
		task.RecurWeek = input.RecurWeek
		task.HorizonUnit = input.HorizonUnit
		task.HorizonValue = input.HorizonValue

		// Reject structurally broken rules before they hit the store; an
		// invalid template would generate nothing and confuse the user.
		if _, err := recurrence.RuleFromTask(task); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.tasks.ListByUser(ctx, user.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID string) (*model.Task, error) {
	return s.tasks.FindByID(ctx, user.ID, taskID)
}

// SetStatus transitions a task's status. The completion guard is consulted
// first: templates reject a transition to done outright, so the caller can
// show a specific message instead of a silent no-op.
func (s *TaskService) SetStatus(ctx context.Context, user *model.User, taskID string, status model.Status) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}

	if err := recurrence.CheckCompletion(*task, status); err != nil {
		return nil, err
	}

	task.Status = status
	task.Synced = false
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks a task as done. Completing an occurrence never touches
// its template.
func (s *TaskService) CompleteTask(ctx context.Context, user *model.User, taskID string) (*model.Task, error) {
	return s.SetStatus(ctx, user, taskID, model.StatusDone)
}

// SetPinned toggles the pinned flag, which floats a task to the top of lists.
func (s *TaskService) SetPinned(ctx context.Context, user *model.User, taskID string, pinned bool) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	task.Pinned = pinned
	task.Synced = false
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task completely, template or occurrence alike.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID string) error {
	return s.tasks.Delete(ctx, user.ID, taskID)
}

// FindTemplate resolves the template an occurrence was generated from.
func (s *TaskService) FindTemplate(ctx context.Context, user *model.User, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	pool, err := s.tasks.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return recurrence.FindTemplate(*task, pool)
}
