package recurrence

import (
	"recurring-planner/internal/model"
)

// FindInstances returns every occurrence in pool spawned from the template:
// same owner, not itself a template, and a title that decodes to the
// template's title. Occurrences created before titles carried a date suffix
// match by plain equality, since decoding leaves them untouched.
func FindInstances(template model.Task, pool []model.Task) []model.Task {
	var instances []model.Task
	for _, c := range pool {
		if c.ID == template.ID || c.IsTemplate() || c.UserID != template.UserID {
			continue
		}
		if DecodeTitle(c.Title) == template.Title {
			instances = append(instances, c)
		}
	}
	return instances
}

// FindTemplate returns the template in pool the occurrence was spawned from,
// or nil when none exists. Ownership is part of the matching key: templates
// of other owners are never candidates, even with an identical title. More
// than one eligible template is reported as ErrAmbiguousTemplateMatch rather
// than silently picking one.
func FindTemplate(instance model.Task, pool []model.Task) (*model.Task, error) {
	base := DecodeTitle(instance.Title)

	var found *model.Task
	for i := range pool {
		c := &pool[i]
		if c.ID == instance.ID || !c.IsTemplate() || c.UserID != instance.UserID {
			continue
		}
		if c.Title != base {
			continue
		}
		if found != nil {
			return nil, ErrAmbiguousTemplateMatch
		}
		found = c
	}
	return found, nil
}
