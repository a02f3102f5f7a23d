package domain

import (
	"sort"
	"time"
)

// maxWeeklyLookaheadDays bounds the weekly scan so a misconfigured weekday
// set cannot loop forever.
const maxWeeklyLookaheadDays = 366

// NextOccurrence computes the next instant a reminder fires relative to now.
// It is used for display ordering only and never schedules anything.
//
// A future anchor is returned as-is. A one-shot whose time has passed keeps
// its past anchor so callers sort it as overdue. A recurring reminder whose
// anchor has passed advances one frequency unit at a time until strictly
// after now; monthly and yearly steps use calendar arithmetic, so a day-31
// anchor rolls over short months the way time.AddDate normalizes them. The
// recurrence end date is not consulted.
func NextOccurrence(r *Reminder, now time.Time) time.Time {
	anchor := r.Anchor()
	if anchor.After(now) {
		return anchor
	}
	if !r.IsRecurring {
		return anchor
	}

	next := anchor
	switch r.Recurrence.Frequency {
	case FreqDaily:
		for !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
	case FreqWeekly:
		var active [7]bool
		for _, wd := range r.ActiveWeekdays() {
			active[wd] = true
		}
		// Jump whole weeks first so an anchor years in the past cannot
		// exhaust the day-by-day scan before it reaches now.
		if weeks := int(now.Sub(next).Hours()) / (24 * 7); weeks > 0 {
			next = next.AddDate(0, 0, weeks*7)
		}
		for i := 0; i < maxWeeklyLookaheadDays; i++ {
			if next.After(now) && active[int(next.Weekday())] {
				break
			}
			next = next.AddDate(0, 0, 1)
		}
	case FreqMonthly:
		for !next.After(now) {
			next = next.AddDate(0, 1, 0)
		}
	case FreqYearly:
		for !next.After(now) {
			next = next.AddDate(1, 0, 0)
		}
	}
	return next
}

// SortByNext orders reminders by their next occurrence, soonest first.
// Overdue one-shots keep their past anchor and therefore sort to the top.
func SortByNext(rs []Reminder, now time.Time) {
	sort.SliceStable(rs, func(i, j int) bool {
		return NextOccurrence(&rs[i], now).Before(NextOccurrence(&rs[j], now))
	})
}
