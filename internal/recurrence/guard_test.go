package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recurring-planner/internal/model"
)

func TestIsCompletionAllowed_TemplateCannotBeDone(t *testing.T) {
	kinds := []string{
		model.RecurDaily,
		model.RecurInterval,
		model.RecurWeekly,
		model.RecurMonthlyByDate,
		model.RecurMonthlyByWeekday,
	}
	for _, kind := range kinds {
		tpl := model.Task{ID: "tpl", RecurKind: kind}
		assert.False(t, IsCompletionAllowed(tpl, model.StatusDone), "kind %s", kind)
	}
}

func TestIsCompletionAllowed_TemplateNonDoneUpdates(t *testing.T) {
	tpl := model.Task{ID: "tpl", RecurKind: model.RecurDaily}
	assert.True(t, IsCompletionAllowed(tpl, model.StatusNew))
}

func TestIsCompletionAllowed_Instances(t *testing.T) {
	inst := model.Task{ID: "occ", RecurKind: model.RecurNone}
	assert.True(t, IsCompletionAllowed(inst, model.StatusDone))

	plain := model.Task{ID: "plain"}
	assert.True(t, IsCompletionAllowed(plain, model.StatusDone))
}

func TestCheckCompletion(t *testing.T) {
	tpl := model.Task{ID: "tpl", RecurKind: model.RecurDaily}
	assert.ErrorIs(t, CheckCompletion(tpl, model.StatusDone), ErrTemplateCompletionForbidden)
	assert.NoError(t, CheckCompletion(tpl, model.StatusNew))

	inst := model.Task{ID: "occ", RecurKind: model.RecurNone}
	assert.NoError(t, CheckCompletion(inst, model.StatusDone))
}
