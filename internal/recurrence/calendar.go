package recurrence

import (
	"fmt"
	"time"
)

// WeekLast selects the last occurrence of a weekday in a month.
const WeekLast = -1

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LastDayOfMonth returns the number of days in the given month (28-31).
func LastDayOfMonth(year int, month time.Month) (int, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidArgument, month)
	}
	if month == time.February && IsLeapYear(year) {
		return 29, nil
	}
	return daysPerMonth[month], nil
}

// CountWeekdayOccurrences returns how many times the weekday falls within the
// month, which is always 4 or 5.
func CountWeekdayOccurrences(year int, month time.Month, weekday time.Weekday) (int, error) {
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidArgument, month)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return 0, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, weekday)
	}

	last, _ := LastDayOfMonth(year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()

	// Days 1-28 contribute four occurrences of every weekday; the remainder
	// of the month contributes one more for each weekday it covers.
	count := 4
	for day := 29; day <= last; day++ {
		if time.Weekday((int(first)+day-1)%7) == weekday {
			count++
		}
	}
	return count, nil
}

// NthWeekdayOfMonth returns the date of the nth occurrence of the weekday in
// the month. n is 1-5, or WeekLast for the final occurrence. For n = 5 the
// second return value is false when the month has only four such weekdays;
// the last occurrence always exists.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) (time.Time, bool, error) {
	if month < time.January || month > time.December {
		return time.Time{}, false, fmt.Errorf("%w: month %d", ErrInvalidArgument, month)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return time.Time{}, false, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, weekday)
	}
	if n != WeekLast && (n < 1 || n > 5) {
		return time.Time{}, false, fmt.Errorf("%w: week number %d", ErrInvalidArgument, n)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	firstMatch := 1 + offset

	last, _ := LastDayOfMonth(year, month)
	if n == WeekLast {
		day := firstMatch
		for day+7 <= last {
			day += 7
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true, nil
	}

	day := firstMatch + (n-1)*7
	if day > last {
		return time.Time{}, false, nil
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true, nil
}
