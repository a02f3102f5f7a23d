package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"remindbot/internal/domain"
)

var errNoOccurrence = errors.New("no next occurrence")

// rruleWeekdays maps the platform weekday numbering (1=Sunday..7=Saturday)
// to rrule weekdays; index with weekday-1.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// nextFire computes when a trigger fires next, strictly after `after` for
// repeating kinds. An absolute spec returns its instant unchanged even when
// it is already in the past, so a stale one-shot becomes due immediately.
func nextFire(spec domain.FireSpec, after time.Time) (time.Time, error) {
	if spec.Kind == domain.FireAbsolute {
		return spec.At, nil
	}

	opt := rrule.ROption{
		// Anchor at the start of after's day so the first candidate can
		// still be later the same day.
		Dtstart:  startOfDay(after),
		Byhour:   []int{spec.Hour},
		Byminute: []int{spec.Minute},
	}

	switch spec.Kind {
	case domain.FireDaily:
		opt.Freq = rrule.DAILY
	case domain.FireWeekly:
		if spec.Weekday < 1 || spec.Weekday > 7 {
			return time.Time{}, fmt.Errorf("weekly trigger: weekday %d out of range", spec.Weekday)
		}
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[spec.Weekday-1]}
	case domain.FireMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{spec.Day}
	case domain.FireYearly:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(spec.Month)}
		opt.Bymonthday = []int{spec.Day}
	default:
		return time.Time{}, fmt.Errorf("unknown fire kind %q", spec.Kind)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return time.Time{}, fmt.Errorf("build rule: %w", err)
	}
	next := r.After(after, false)
	if next.IsZero() {
		return time.Time{}, errNoOccurrence
	}
	return next, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
