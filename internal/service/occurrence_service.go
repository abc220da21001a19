package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recurring-planner/internal/model"
	"recurring-planner/internal/recurrence"
)

// OccurrenceService keeps every template's occurrence horizon topped up. It
// is safe to run as often as wanted: already generated occurrences are
// detected through the matcher and never duplicated.
type OccurrenceService struct {
	tasks TaskStore
}

func NewOccurrenceService(tasks TaskStore) *OccurrenceService {
	return &OccurrenceService{tasks: tasks}
}

// TopUpResult reports what a top-up run did.
type TopUpResult struct {
	Templates int // templates visited
	Created   int // occurrences created
	Skipped   int // templates skipped because their rule is invalid
}

// TopUpUser expands every template owned by the user and creates the
// occurrences that do not exist yet. now is the reference clock: occurrence
// dates at or before now are considered past and skipped. A template with an
// invalid rule contributes zero occurrences and is reported, not fatal; the
// remaining templates still run.
func (s *OccurrenceService) TopUpUser(ctx context.Context, userID string, now time.Time) (TopUpResult, error) {
	var res TopUpResult

	pool, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("load tasks: %w", err)
	}

	for _, tpl := range pool {
		if !tpl.IsTemplate() {
			continue
		}
		res.Templates++

		created, err := s.topUpTemplate(ctx, tpl, pool, now)
		if err != nil {
			if errors.Is(err, recurrence.ErrInvalidRule) {
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Created += len(created)
		pool = append(pool, created...)
	}

	return res, nil
}

func (s *OccurrenceService) topUpTemplate(ctx context.Context, tpl model.Task, pool []model.Task, now time.Time) ([]model.Task, error) {
	rule, err := recurrence.RuleFromTask(tpl)
	if err != nil {
		return nil, err
	}

	// The template's deadline is the reference: its clock time is the
	// canonical time-of-day for every occurrence. Without one, generation
	// counts forward from midnight of the caller's current day.
	ref := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if tpl.Deadline != nil {
		ref = *tpl.Deadline
	}

	dates, err := recurrence.ExpandHorizon(rule, ref)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool)
	for _, inst := range recurrence.FindInstances(tpl, pool) {
		existing[inst.Title] = true
	}

	var created []model.Task
	for _, d := range dates {
		if !d.After(now) {
			continue // already in the past relative to the caller's clock
		}
		title := recurrence.EncodeTitle(tpl.Title, d)
		if existing[title] {
			continue
		}

		deadline := d
		occ := model.Task{
			ID:          uuid.NewString(),
			UserID:      tpl.UserID,
			CategoryID:  tpl.CategoryID,
			Title:       title,
			Description: tpl.Description,
			Priority:    tpl.Priority,
			Status:      model.StatusNew,
			Deadline:    &deadline,
			RecurKind:   model.RecurNone,
		}
		if err := s.tasks.Create(ctx, &occ); err != nil {
			return created, fmt.Errorf("create occurrence: %w", err)
		}
		existing[title] = true
		created = append(created, occ)
	}

	return created, nil
}
