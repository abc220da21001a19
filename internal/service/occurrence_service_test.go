package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recurring-planner/internal/model"
	"recurring-planner/internal/recurrence"
)

func newDailyTemplate(id, userID, title string, deadline time.Time) model.Task {
	return model.Task{
		ID:           id,
		UserID:       userID,
		Title:        title,
		Status:       model.StatusNew,
		Priority:     model.PriorityMedium,
		Deadline:     &deadline,
		RecurKind:    model.RecurDaily,
		HorizonUnit:  model.HorizonDays,
		HorizonValue: 7,
	}
}

func TestTopUpUser_DailyTemplate(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	now := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	tpl := newDailyTemplate("tpl-1", "user-1", "Daily Task", now)
	require.NoError(t, store.Create(ctx, &tpl))

	res, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Templates)
	assert.Equal(t, 7, res.Created)
	assert.Equal(t, 0, res.Skipped)

	all, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)

	instances := recurrence.FindInstances(tpl, all)
	require.Len(t, instances, 7)

	days := make(map[int]bool)
	for _, inst := range instances {
		require.NotNil(t, inst.Deadline)
		assert.Equal(t, model.RecurNone, inst.RecurKind)
		assert.Equal(t, model.StatusNew, inst.Status)
		assert.Equal(t, recurrence.EncodeTitle("Daily Task", *inst.Deadline), inst.Title)
		assert.Equal(t, 8, inst.Deadline.Hour())
		days[inst.Deadline.Day()] = true
	}
	// 2025-01-02 through 2025-01-08, one per day, no gaps.
	for day := 2; day <= 8; day++ {
		assert.True(t, days[day], "missing day %d", day)
	}
}

func TestTopUpUser_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	now := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	tpl := newDailyTemplate("tpl-1", "user-1", "Daily Task", now)
	require.NoError(t, store.Create(ctx, &tpl))

	first, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 7, first.Created)

	second, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created, "second run must not duplicate occurrences")

	all, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 8) // template + 7 occurrences
}

func TestTopUpUser_TopsUpAfterCompletion(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	now := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	tpl := newDailyTemplate("tpl-1", "user-1", "Daily Task", now)
	require.NoError(t, store.Create(ctx, &tpl))

	_, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)

	// Days pass; the horizon window moves and earlier occurrences are done.
	later := now.AddDate(0, 0, 3)
	res, err := svc.TopUpUser(ctx, "user-1", later)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created, "existing occurrences already cover the window")
}

func TestTopUpUser_SkipsPastDates(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	// Template deadline far in the past; only dates after "now" materialize.
	old := time.Date(2024, time.December, 1, 9, 0, 0, 0, time.UTC)
	tpl := newDailyTemplate("tpl-1", "user-1", "Daily Task", old)
	require.NoError(t, store.Create(ctx, &tpl))

	now := time.Date(2024, time.December, 5, 12, 0, 0, 0, time.UTC)
	res, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	// Dec 2-8 generated from the deadline, Dec 2-5 are already past.
	assert.Equal(t, 3, res.Created)

	all, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	for _, task := range all {
		if task.IsTemplate() {
			continue
		}
		assert.True(t, task.Deadline.After(now), "past occurrence %s created", task.Deadline)
	}
}

func TestTopUpUser_NoDeadlineUsesLocalMidnight(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	// A template without a deadline counts from midnight in the caller's
	// zone, not from a UTC day boundary.
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)

	tpl := model.Task{
		ID:           "tpl-1",
		UserID:       "user-1",
		Title:        "Stretch",
		Status:       model.StatusNew,
		RecurKind:    model.RecurDaily,
		HorizonUnit:  model.HorizonDays,
		HorizonValue: 3,
	}
	require.NoError(t, store.Create(ctx, &tpl))

	res, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)

	all, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)

	days := make(map[int]bool)
	for _, task := range all {
		if task.IsTemplate() {
			continue
		}
		require.NotNil(t, task.Deadline)
		assert.Equal(t, 0, task.Deadline.Hour(), "expected local midnight, got %s", task.Deadline)
		assert.Equal(t, 0, task.Deadline.Minute())
		assert.Equal(t, loc, task.Deadline.Location())
		days[task.Deadline.Day()] = true
	}
	for day := 11; day <= 13; day++ {
		assert.True(t, days[day], "missing day %d", day)
	}
}

func TestTopUpUser_InvalidRuleSkipped(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	now := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)

	broken := model.Task{
		ID:           "tpl-broken",
		UserID:       "user-1",
		Title:        "Broken",
		RecurKind:    model.RecurWeekly,
		HorizonUnit:  model.HorizonWeeks,
		HorizonValue: 4,
		// weekday set missing
	}
	require.NoError(t, store.Create(ctx, &broken))
	good := newDailyTemplate("tpl-good", "user-1", "Daily Task", now)
	require.NoError(t, store.Create(ctx, &good))

	res, err := svc.TopUpUser(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Templates)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 7, res.Created, "valid templates still expand")
}

func TestTopUpUser_MonthlyClampedOccurrences(t *testing.T) {
	ctx := context.Background()
	store := newMemTaskStore()
	svc := NewOccurrenceService(store)

	deadline := time.Date(2025, time.January, 10, 18, 30, 0, 0, time.UTC)
	tpl := model.Task{
		ID:           "tpl-rent",
		UserID:       "user-1",
		Title:        "Pay rent",
		Deadline:     &deadline,
		RecurKind:    model.RecurMonthlyByDate,
		RecurDay:     31,
		HorizonUnit:  model.HorizonMonths,
		HorizonValue: 3,
	}
	require.NoError(t, store.Create(ctx, &tpl))

	res, err := svc.TopUpUser(ctx, "user-1", deadline)
	require.NoError(t, err)
	require.Equal(t, 3, res.Created)

	all, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	for _, task := range all {
		if task.IsTemplate() {
			continue
		}
		// Jan 31, Feb 28, Mar 31, each at the template's time-of-day.
		assert.Equal(t, 18, task.Deadline.Hour())
		assert.Equal(t, 30, task.Deadline.Minute())
		last, lerr := recurrence.LastDayOfMonth(task.Deadline.Year(), task.Deadline.Month())
		require.NoError(t, lerr)
		if last >= 31 {
			assert.Equal(t, 31, task.Deadline.Day())
		} else {
			assert.Equal(t, last, task.Deadline.Day())
		}
	}
}
