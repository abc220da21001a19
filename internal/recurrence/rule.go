package recurrence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"recurring-planner/internal/model"
)

// Kind identifies how a rule repeats.
type Kind string

const (
	KindNone             Kind = model.RecurNone
	KindDaily            Kind = model.RecurDaily
	KindInterval         Kind = model.RecurInterval
	KindWeekly           Kind = model.RecurWeekly
	KindMonthlyByDate    Kind = model.RecurMonthlyByDate
	KindMonthlyByWeekday Kind = model.RecurMonthlyByWeekday
)

// HorizonUnit measures how far ahead occurrences are generated.
type HorizonUnit string

const (
	UnitDays   HorizonUnit = model.HorizonDays
	UnitWeeks  HorizonUnit = model.HorizonWeeks
	UnitMonths HorizonUnit = model.HorizonMonths
)

// Horizon is the generation window of a rule.
type Horizon struct {
	Unit  HorizonUnit
	Value int
}

// Pattern is the type-specific half of a recurrence rule. Each variant
// carries only the parameters its kind requires.
type Pattern interface {
	Kind() Kind
	validate() error
}

// None marks a plain, non-recurring task.
type None struct{}

// Daily repeats every day.
type Daily struct{}

// EveryNDays repeats on a fixed day interval.
type EveryNDays struct {
	Days int
}

// Weekly repeats on a set of weekdays every week.
type Weekly struct {
	Weekdays []time.Weekday
}

// MonthlyByDate repeats on a fixed day of the month, clamped to the last day
// of months that are too short.
type MonthlyByDate struct {
	Day int
}

// MonthlyByWeekday repeats on the nth weekday of the month (Week 1-5, or
// WeekLast). Months without an nth weekday are skipped.
type MonthlyByWeekday struct {
	Weekday time.Weekday
	Week    int
}

func (None) Kind() Kind             { return KindNone }
func (Daily) Kind() Kind            { return KindDaily }
func (EveryNDays) Kind() Kind       { return KindInterval }
func (Weekly) Kind() Kind           { return KindWeekly }
func (MonthlyByDate) Kind() Kind    { return KindMonthlyByDate }
func (MonthlyByWeekday) Kind() Kind { return KindMonthlyByWeekday }

func (None) validate() error  { return nil }
func (Daily) validate() error { return nil }

func (p EveryNDays) validate() error {
	if p.Days <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidRule, p.Days)
	}
	return nil
}

func (p Weekly) validate() error {
	if len(p.Weekdays) == 0 {
		return fmt.Errorf("%w: weekly rule needs at least one weekday", ErrInvalidRule)
	}
	for _, d := range p.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, d)
		}
	}
	return nil
}

func (p MonthlyByDate) validate() error {
	if p.Day < 1 || p.Day > 31 {
		return fmt.Errorf("%w: day of month %d out of range", ErrInvalidRule, p.Day)
	}
	return nil
}

func (p MonthlyByWeekday) validate() error {
	if p.Weekday < time.Sunday || p.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, p.Weekday)
	}
	if p.Week != WeekLast && (p.Week < 1 || p.Week > 5) {
		return fmt.Errorf("%w: week number %d out of range", ErrInvalidRule, p.Week)
	}
	return nil
}

// Rule describes how a template repeats and how far ahead to generate.
type Rule struct {
	Pattern Pattern
	Horizon Horizon
}

// IsNone reports whether the rule marks a plain, non-template task.
func (r Rule) IsNone() bool {
	return r.Pattern == nil || r.Pattern.Kind() == KindNone
}

// Validate checks structural completeness. A none rule is always valid.
func (r Rule) Validate() error {
	if r.IsNone() {
		return nil
	}
	if err := r.Pattern.validate(); err != nil {
		return err
	}
	switch r.Horizon.Unit {
	case UnitDays, UnitWeeks, UnitMonths:
	default:
		return fmt.Errorf("%w: unknown horizon unit %q", ErrInvalidRule, r.Horizon.Unit)
	}
	if r.Horizon.Value <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidRule, r.Horizon.Value)
	}
	return nil
}

// InstanceCount derives how many occurrences the horizon yields for this
// rule's kind. Cross-unit combinations approximate with 7-day weeks and
// 30-day months; the interval path inherits the same truncating-division
// approximation the original behavior depends on, so it stays as is.
func (r Rule) InstanceCount() int {
	if r.IsNone() {
		return 0
	}
	v := r.Horizon.Value

	switch p := r.Pattern.(type) {
	case Daily:
		return horizonDays(r.Horizon)
	case EveryNDays:
		n := horizonDays(r.Horizon) / p.Days
		if n < 1 {
			n = 1
		}
		return n
	case Weekly:
		weeks := v
		switch r.Horizon.Unit {
		case UnitDays:
			weeks = v / 7
		case UnitMonths:
			weeks = v * 4
		}
		if weeks < 1 {
			weeks = 1
		}
		return weeks * len(p.Weekdays)
	case MonthlyByDate, MonthlyByWeekday:
		months := v
		switch r.Horizon.Unit {
		case UnitDays:
			months = v / 30
		case UnitWeeks:
			months = v / 4
		}
		if months < 1 {
			months = 1
		}
		return months
	default:
		return 0
	}
}

func horizonDays(h Horizon) int {
	switch h.Unit {
	case UnitWeeks:
		return h.Value * 7
	case UnitMonths:
		return h.Value * 30
	default:
		return h.Value
	}
}

// RuleFromTask builds a Rule from the flat recurrence columns of a task
// record and validates it.
func RuleFromTask(t model.Task) (Rule, error) {
	var pattern Pattern
	switch t.RecurKind {
	case "", model.RecurNone:
		return Rule{Pattern: None{}}, nil
	case model.RecurDaily:
		pattern = Daily{}
	case model.RecurInterval:
		pattern = EveryNDays{Days: t.RecurInterval}
	case model.RecurWeekly:
		days, err := parseWeekdays(t.RecurWeekdays)
		if err != nil {
			return Rule{}, err
		}
		pattern = Weekly{Weekdays: days}
	case model.RecurMonthlyByDate:
		pattern = MonthlyByDate{Day: t.RecurDay}
	case model.RecurMonthlyByWeekday:
		days, err := parseWeekdays(t.RecurWeekdays)
		if err != nil {
			return Rule{}, err
		}
		if len(days) != 1 {
			return Rule{}, fmt.Errorf("%w: monthly-by-weekday rule needs exactly one weekday", ErrInvalidRule)
		}
		pattern = MonthlyByWeekday{Weekday: days[0], Week: t.RecurWeek}
	default:
		return Rule{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, t.RecurKind)
	}

	rule := Rule{
		Pattern: pattern,
		Horizon: Horizon{Unit: HorizonUnit(t.HorizonUnit), Value: t.HorizonValue},
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// parseWeekdays parses a comma-separated weekday list ("2,5") into sorted,
// deduplicated weekdays.
func parseWeekdays(raw string) ([]time.Weekday, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: weekday set is empty", ErrInvalidRule)
	}
	seen := make(map[time.Weekday]bool)
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: bad weekday %q", ErrInvalidRule, part)
		}
		d := time.Weekday(n)
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, n)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days, nil
}

// FormatWeekdays renders weekdays back into the persisted comma-separated
// form, the inverse of the parsing done by RuleFromTask.
func FormatWeekdays(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}
