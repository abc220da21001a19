package recurrence

import (
	"fmt"
	"time"
)

// maxMonthLookahead bounds the search for the next month containing an nth
// weekday. A stretch of months without a 5th weekday longer than this never
// happens in practice, but the loop must terminate even if it did.
const maxMonthLookahead = 12

// Expand computes the next count occurrence dates of rule, each strictly
// after ref. The clock time of ref (the template deadline, or a day-default
// when it has none) is carried onto every result.
//
// Months too short for a monthly-by-date day are clamped to their last day.
// Months without the requested nth weekday are skipped, so a
// monthly-by-weekday expansion can return fewer than count dates when the
// lookahead bound is exhausted.
func Expand(rule Rule, ref time.Time, count int) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if rule.IsNone() || count <= 0 {
		return nil, nil
	}

	switch p := rule.Pattern.(type) {
	case Daily:
		return expandFixedStep(ref, count, 1), nil
	case EveryNDays:
		return expandFixedStep(ref, count, p.Days), nil
	case Weekly:
		return expandWeekly(ref, count, p.Weekdays), nil
	case MonthlyByDate:
		return expandMonthlyByDate(ref, count, p.Day), nil
	case MonthlyByWeekday:
		return expandMonthlyByWeekday(ref, count, p.Weekday, p.Week), nil
	default:
		return nil, fmt.Errorf("%w: unknown pattern %T", ErrInvalidRule, rule.Pattern)
	}
}

// ExpandHorizon expands the rule over its own horizon.
func ExpandHorizon(rule Rule, ref time.Time) ([]time.Time, error) {
	return Expand(rule, ref, rule.InstanceCount())
}

func expandFixedStep(ref time.Time, count, step int) []time.Time {
	dates := make([]time.Time, 0, count)
	cur := ref
	for len(dates) < count {
		cur = cur.AddDate(0, 0, step)
		dates = append(dates, cur)
	}
	return dates
}

func expandWeekly(ref time.Time, count int, weekdays []time.Weekday) []time.Time {
	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		wanted[d] = true
	}

	dates := make([]time.Time, 0, count)
	cur := ref
	// Every calendar date is visited exactly once, so the result is ordered
	// and duplicate-free by construction.
	for len(dates) < count {
		cur = cur.AddDate(0, 0, 1)
		if wanted[cur.Weekday()] {
			dates = append(dates, cur)
		}
	}
	return dates
}

func expandMonthlyByDate(ref time.Time, count, day int) []time.Time {
	dates := make([]time.Time, 0, count)
	year, month, _ := ref.Date()
	for len(dates) < count {
		last, _ := LastDayOfMonth(year, month)
		d := day
		if d > last {
			d = last // clamp, never skip
		}
		candidate := time.Date(year, month, d,
			ref.Hour(), ref.Minute(), ref.Second(), 0, ref.Location())
		if candidate.After(ref) {
			dates = append(dates, candidate)
		}
		year, month = nextMonth(year, month)
	}
	return dates
}

func expandMonthlyByWeekday(ref time.Time, count int, weekday time.Weekday, week int) []time.Time {
	dates := make([]time.Time, 0, count)
	year, month, _ := ref.Date()
	misses := 0
	for len(dates) < count {
		nth, ok, _ := NthWeekdayOfMonth(year, month, weekday, week)
		if !ok {
			// No nth weekday this month: skip it entirely, bounded so a
			// pathological rule cannot search forever.
			misses++
			if misses > maxMonthLookahead {
				break
			}
			year, month = nextMonth(year, month)
			continue
		}
		misses = 0
		candidate := time.Date(year, month, nth.Day(),
			ref.Hour(), ref.Minute(), ref.Second(), 0, ref.Location())
		if candidate.After(ref) {
			dates = append(dates, candidate)
		}
		year, month = nextMonth(year, month)
	}
	return dates
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
