package domain

import (
	"fmt"
	"time"
)

// FireKind discriminates the scheduling condition of a trigger.
type FireKind string

const (
	FireAbsolute FireKind = "absolute"
	FireDaily    FireKind = "daily"
	FireWeekly   FireKind = "weekly"
	FireMonthly  FireKind = "monthly"
	FireYearly   FireKind = "yearly"
)

// FireSpec describes when a trigger fires. Which fields are meaningful
// depends on Kind: At for absolute; Hour and Minute for every repeating
// kind; Weekday (1=Sunday..7=Saturday) for weekly; Day for monthly and
// yearly; Month for yearly.
type FireSpec struct {
	Kind    FireKind   `json:"kind"`
	At      time.Time  `json:"at,omitempty"`
	Hour    int        `json:"hour"`
	Minute  int        `json:"minute"`
	Weekday int        `json:"weekday,omitempty"`
	Day     int        `json:"day,omitempty"`
	Month   time.Month `json:"month,omitempty"`
}

// Trigger is a single notification registration request derived from a
// reminder. Its ID is the join key between the reminder and the platform
// side; it is never persisted with the reminder and is recomputed on every
// schedule or cancel.
type Trigger struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Spec  FireSpec `json:"spec"`
}

// Materialize turns a reminder into the trigger set that realizes it: one
// absolute trigger for a one-shot, one trigger per recurrence class for a
// recurring reminder, one per active weekday (ascending) for weekly. Trigger
// ids are the bare reminder id, or "{id}_{weekday}" with the 0..6 weekday
// for weekly.
//
// A one-shot whose anchor has already passed but is still on today's date is
// moved to the same time tomorrow so it is not registered in the past. A
// past anchor on an earlier date is kept as-is and fires as soon as
// possible.
func Materialize(r *Reminder, now time.Time) []Trigger {
	anchor := r.Anchor()

	if !r.IsRecurring {
		if !anchor.After(now) && sameDate(anchor, now) {
			anchor = anchor.AddDate(0, 0, 1)
		}
		return []Trigger{{
			ID:    r.ID,
			Title: r.Title,
			Body:  r.Body,
			Spec:  FireSpec{Kind: FireAbsolute, At: anchor},
		}}
	}

	hour, minute := anchor.Hour(), anchor.Minute()

	switch r.Recurrence.Frequency {
	case FreqDaily:
		return []Trigger{{
			ID:    r.ID,
			Title: r.Title,
			Body:  r.Body,
			Spec:  FireSpec{Kind: FireDaily, Hour: hour, Minute: minute},
		}}
	case FreqWeekly:
		days := r.ActiveWeekdays()
		out := make([]Trigger, 0, len(days))
		for _, wd := range days {
			out = append(out, Trigger{
				ID:    fmt.Sprintf("%s_%d", r.ID, wd),
				Title: r.Title,
				Body:  r.Body,
				// The platform numbers weekdays 1=Sunday..7=Saturday.
				Spec: FireSpec{Kind: FireWeekly, Hour: hour, Minute: minute, Weekday: wd + 1},
			})
		}
		return out
	case FreqMonthly:
		return []Trigger{{
			ID:    r.ID,
			Title: r.Title,
			Body:  r.Body,
			Spec:  FireSpec{Kind: FireMonthly, Hour: hour, Minute: minute, Day: anchor.Day()},
		}}
	case FreqYearly:
		return []Trigger{{
			ID:    r.ID,
			Title: r.Title,
			Body:  r.Body,
			Spec:  FireSpec{Kind: FireYearly, Hour: hour, Minute: minute, Day: anchor.Day(), Month: anchor.Month()},
		}}
	}
	return nil
}

// CancelIDs returns every trigger id that may have been registered for a
// reminder: the bare id plus all seven weekday variants, 8 in total. Which
// variant set was actually scheduled is never persisted, so cancellation
// probes all of them; canceling an unknown id is a no-op on the platform
// side.
func CancelIDs(id string) []string {
	ids := make([]string, 0, 8)
	ids = append(ids, id)
	for wd := 0; wd <= 6; wd++ {
		ids = append(ids, fmt.Sprintf("%s_%d", id, wd))
	}
	return ids
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
