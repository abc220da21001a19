package model

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusNew  Status = "new"
	StatusDone Status = "done"
)

// Priority levels, highest first when sorting.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recurrence kinds as persisted on a task record. A task with a kind other
// than RecurNone (or empty) is a template; everything else is a concrete task.
const (
	RecurNone             = "none"
	RecurDaily            = "daily"
	RecurInterval         = "interval"
	RecurWeekly           = "weekly"
	RecurMonthlyByDate    = "monthly_by_date"
	RecurMonthlyByWeekday = "monthly_by_weekday"
)

// Horizon units for how far ahead a template generates occurrences.
const (
	HorizonDays   = "days"
	HorizonWeeks  = "weeks"
	HorizonMonths = "months"
)

// Task represents a single item in the planner. IDs are client-generated
// UUIDs so records created offline keep their identity when synced.
type Task struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index"`
	CategoryID  *uint  `gorm:"index"`
	Title       string
	Description string
	Priority    Priority `gorm:"default:medium"`
	Status      Status   `gorm:"default:new"`
	Pinned      bool     `gorm:"default:false"`
	Deadline    *time.Time

	// Recurrence columns; only the ones required by RecurKind are meaningful.
	RecurKind     string `gorm:"default:none"`
	RecurInterval int
	RecurWeekdays string // comma-separated weekday numbers, 0 = Sunday
	RecurDay      int    // day of month, 1-31
	RecurWeek     int    // 1-5, or -1 for "last"
	HorizonUnit   string
	HorizonValue  int

	Synced    bool `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTemplate reports whether the task is a recurring template rather than a
// schedulable task. Templates spawn occurrences and can never be completed.
func (t Task) IsTemplate() bool {
	return t.RecurKind != "" && t.RecurKind != RecurNone
}

// IsDone reports whether the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}
