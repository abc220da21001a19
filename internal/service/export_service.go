package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"recurring-planner/internal/model"
	"recurring-planner/internal/recurrence"
)

var icsByDay = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// ExportService renders tasks to iCalendar so occurrences show up in any
// calendar client. Occurrences become plain events; templates become events
// carrying an RRULE derived from their pattern.
type ExportService struct {
	prodID string
}

func NewExportService() *ExportService {
	return &ExportService{prodID: "-//RecurringPlanner//Task Export//EN"}
}

// BuildCalendar assembles a VCALENDAR from the given tasks. Tasks without a
// deadline are left out: an event needs a concrete start.
func (s *ExportService) BuildCalendar(tasks []model.Task, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, s.prodID)

	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("task-%s@recurring-planner", t.ID))
		event.Props.SetText(ical.PropSummary, strings.TrimSpace(t.Title))
		if desc := strings.TrimSpace(t.Description); desc != "" {
			event.Props.SetText(ical.PropDescription, desc)
		}
		event.Props.SetDateTime(ical.PropDateTimeStart, t.Deadline.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

		if t.IsTemplate() {
			if rrule := buildRRule(t); rrule != "" {
				prop := ical.NewProp(ical.PropRecurrenceRule)
				prop.Value = rrule
				event.Props.Set(prop)
			}
		}

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// WriteICS serializes the calendar for the given tasks.
func (s *ExportService) WriteICS(tasks []model.Task, now time.Time) ([]byte, error) {
	cal := s.BuildCalendar(tasks, now)
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// buildRRule maps a template's pattern onto the iCalendar recurrence
// grammar. An invalid rule maps to nothing rather than a broken RRULE.
func buildRRule(t model.Task) string {
	rule, err := recurrence.RuleFromTask(t)
	if err != nil || rule.IsNone() {
		return ""
	}

	switch p := rule.Pattern.(type) {
	case recurrence.Daily:
		return "FREQ=DAILY"
	case recurrence.EveryNDays:
		return fmt.Sprintf("FREQ=DAILY;INTERVAL=%d", p.Days)
	case recurrence.Weekly:
		days := make([]string, 0, len(p.Weekdays))
		for _, d := range p.Weekdays {
			days = append(days, icsByDay[d])
		}
		return "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
	case recurrence.MonthlyByDate:
		return fmt.Sprintf("FREQ=MONTHLY;BYMONTHDAY=%d", p.Day)
	case recurrence.MonthlyByWeekday:
		return fmt.Sprintf("FREQ=MONTHLY;BYDAY=%d%s", p.Week, icsByDay[p.Weekday])
	default:
		return ""
	}
}
