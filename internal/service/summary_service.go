package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"recurring-planner/internal/model"
)

// Filter selects a slice of the task list.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterNew    Filter = "new"
	FilterDone   Filter = "done"
	FilterPinned Filter = "pinned"
	FilterHigh   Filter = "high"
	FilterMedium Filter = "medium"
	FilterLow    Filter = "low"
)

// Deadline group names, in display order.
var groupOrder = []string{"Today", "Tomorrow", "This Week", "Later", "No Deadline"}

var priorityRank = map[model.Priority]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// SummaryService builds human-readable task reports.
type SummaryService struct {
	tasks      TaskStore
	categories *CategoryService
}

func NewSummaryService(tasks TaskStore, categories *CategoryService) *SummaryService {
	return &SummaryService{tasks: tasks, categories: categories}
}

// FilterTasks returns the tasks matching the filter.
func FilterTasks(tasks []model.Task, filter Filter) []model.Task {
	var keep func(model.Task) bool
	switch filter {
	case FilterNew:
		keep = func(t model.Task) bool { return t.Status == model.StatusNew }
	case FilterDone:
		keep = func(t model.Task) bool { return t.Status == model.StatusDone }
	case FilterPinned:
		keep = func(t model.Task) bool { return t.Pinned }
	case FilterHigh, FilterMedium, FilterLow:
		keep = func(t model.Task) bool { return t.Priority == model.Priority(filter) }
	default:
		return tasks
	}

	var out []model.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks orders tasks for display: pinned first, open before done, then
// priority high to low, then newest first.
func SortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.IsDone() != b.IsDone() {
			return !a.IsDone()
		}
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// GroupByDeadline buckets tasks by how soon their deadline falls relative to
// now: Today, Tomorrow, This Week (within 7 days), Later, or No Deadline.
func GroupByDeadline(tasks []model.Task, now time.Time) map[string][]model.Task {
	groups := make(map[string][]model.Task)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, 7)

	for _, t := range tasks {
		if t.Deadline == nil {
			groups["No Deadline"] = append(groups["No Deadline"], t)
			continue
		}
		d := t.Deadline.In(now.Location())
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case day.Equal(today):
			groups["Today"] = append(groups["Today"], t)
		case day.Equal(tomorrow):
			groups["Tomorrow"] = append(groups["Tomorrow"], t)
		case day.After(today) && !day.After(weekEnd):
			groups["This Week"] = append(groups["This Week"], t)
		default:
			groups["Later"] = append(groups["Later"], t)
		}
	}
	return groups
}

// DailySummary renders the user's open tasks grouped by deadline. Templates
// are listed separately; they are definitions, not work to do today.
func (s *SummaryService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	pending, err := s.tasks.ListPending(ctx, user.ID)
	if err != nil {
		return "", err
	}

	catNames := make(map[uint]string)
	if categories, err := s.categories.List(ctx, &user); err == nil {
		for _, cat := range categories {
			catNames[cat.ID] = cat.Name
		}
	}

	var open []model.Task
	var templates []model.Task
	for _, t := range pending {
		switch {
		case t.IsTemplate():
			templates = append(templates, t)
		case !t.IsDone():
			open = append(open, t)
		}
	}
	SortTasks(open)

	groups := GroupByDeadline(open, now)

	var builder strings.Builder
	builder.WriteString("Daily summary\n")
	builder.WriteString(fmt.Sprintf("%s\n", now.Format("2006-01-02")))

	for _, name := range groupOrder {
		tasks := groups[name]
		if len(tasks) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n%s\n", name))
		for _, t := range tasks {
			builder.WriteString(formatTaskLine(t, catNames, now))
		}
	}

	if len(open) == 0 {
		builder.WriteString("\nNo open tasks.\n")
	}

	if len(templates) > 0 {
		builder.WriteString("\nRecurring templates\n")
		for _, t := range templates {
			builder.WriteString(fmt.Sprintf("  ~ %s (%s)\n", strings.TrimSpace(t.Title), t.RecurKind))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTaskLine(t model.Task, catNames map[uint]string, now time.Time) string {
	var sb strings.Builder

	marker := "-"
	if t.Pinned {
		marker = "*"
	}
	sb.WriteString(fmt.Sprintf("  %s %s", marker, strings.TrimSpace(t.Title)))

	if t.Priority == model.PriorityHigh {
		sb.WriteString(" [high]")
	}

	if t.CategoryID != nil {
		if name, ok := catNames[*t.CategoryID]; ok && strings.TrimSpace(name) != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.TrimSpace(name)))
		}
	}

	if t.Deadline != nil {
		d := t.Deadline.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf(" | due %s (overdue)", d.Format("2006-01-02")))
		} else {
			sb.WriteString(fmt.Sprintf(" | due %s", d.Format("2006-01-02")))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
