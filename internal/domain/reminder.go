package domain

import (
	"errors"
	"sort"
	"time"
)

// FallbackM is the time of day used for all-day reminders, in minutes from
// midnight (09:00).
const FallbackM = 9 * 60

// Frequency is the recurrence unit of a recurring reminder.
type Frequency string

const (
	FreqDaily   Frequency = "day"
	FreqWeekly  Frequency = "week"
	FreqMonthly Frequency = "month"
	FreqYearly  Frequency = "year"
)

var (
	ErrEmptyID          = errors.New("empty reminder id")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidStartTime = errors.New("start time out of range")
	ErrNoRecurrence     = errors.New("recurring reminder without recurrence")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidWeekday   = errors.New("weekday out of range")
)

// Recurrence describes how a recurring reminder repeats.
type Recurrence struct {
	Frequency Frequency `json:"frequency"`
	// Interval is the "repeat every N units" value collected from the user.
	// Expansion always steps by a single unit; the value is kept so edits
	// round-trip it.
	Interval int `json:"interval"`
	// DaysOfWeek holds weekday numbers 0 (Sunday) .. 6 (Saturday). Only
	// weekly reminders consult it; empty means "the start date's weekday".
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`
	// Until is an optional end-date cutoff. It is persisted and displayed
	// but not consulted when expanding occurrences.
	Until *time.Time `json:"until,omitempty"`
}

// Reminder is a single reminder record together with its timing rule.
// StartM follows the minutes-from-midnight convention (0..1439); it is
// ignored for all-day reminders, which fire at the 09:00 fallback.
type Reminder struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Body        string      `json:"body,omitempty"`
	StartDate   time.Time   `json:"startDate"` // calendar date anchor, local midnight
	StartM      int         `json:"startM"`
	IsAllDay    bool        `json:"isAllDay"`
	IsRecurring bool        `json:"isRecurring"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"` // informational, one-shots only
	CreatedAt   time.Time   `json:"createdAt"`
}

// Note is a free-form note; it has no timing semantics.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Anchor returns the first fire instant before any recurrence advancement:
// the start date combined with the start time, or the fallback time for
// all-day reminders.
func (r *Reminder) Anchor() time.Time {
	m := r.StartM
	if r.IsAllDay {
		m = FallbackM
	}
	d := r.StartDate
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, d.Location())
}

// ActiveWeekdays returns the weekday set a weekly reminder fires on, sorted
// ascending with duplicates and out-of-range values dropped. An empty set
// falls back to the anchor's own weekday.
func (r *Reminder) ActiveWeekdays() []int {
	var out []int
	if r.Recurrence != nil {
		seen := [7]bool{}
		for _, wd := range r.Recurrence.DaysOfWeek {
			if wd < 0 || wd > 6 || seen[wd] {
				continue
			}
			seen[wd] = true
			out = append(out, wd)
		}
	}
	if len(out) == 0 {
		return []int{int(r.Anchor().Weekday())}
	}
	sort.Ints(out)
	return out
}

// Normalize clamps fields that arrive from user input or old persisted
// blobs: a non-positive interval becomes 1 and the weekday set is deduped.
func (r *Reminder) Normalize() {
	if r.Recurrence == nil {
		return
	}
	if r.Recurrence.Interval < 1 {
		r.Recurrence.Interval = 1
	}
	if len(r.Recurrence.DaysOfWeek) > 0 {
		r.Recurrence.DaysOfWeek = r.ActiveWeekdays()
	}
}

// Validate reports the first structural problem with the reminder.
func (r *Reminder) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.StartM < 0 || r.StartM > 1439 {
		return ErrInvalidStartTime
	}
	if !r.IsRecurring {
		return nil
	}
	if r.Recurrence == nil {
		return ErrNoRecurrence
	}
	switch r.Recurrence.Frequency {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
	default:
		return ErrInvalidFrequency
	}
	for _, wd := range r.Recurrence.DaysOfWeek {
		if wd < 0 || wd > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}
