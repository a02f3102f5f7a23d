package telegram

import (
	"fmt"
	"strings"
	"time"

	"remindbot/internal/domain"
)

const helpText = "👋 I keep your reminders and notes.\n\n" +
	"Reminders:\n" +
	"  /add <date> <HH:MM|allday> [every [N] day|week|month|year] [on mon,wed,fri] [until <date>] <title> [| body]\n" +
	"  /list — reminders, soonest first\n" +
	"  /edit <id> <same arguments as /add>\n" +
	"  /del <id>\n\n" +
	"Notes:\n" +
	"  /note <title> [| body]\n" +
	"  /notes\n" +
	"  /editnote <id> <title> [| body]\n" +
	"  /delnote <id>\n\n" +
	"Dates are YYYY-MM-DD (or today/tomorrow). All-day reminders fire at 09:00.\n" +
	"Examples:\n" +
	"  /add today 07:30 every day Water plants\n" +
	"  /add 2026-09-01 18:00 every week on mon,wed,fri Gym | leg day"

const addUsage = "Usage: /add <date> <HH:MM|allday> [every [N] day|week|month|year] " +
	"[on mon,wed,fri] [until <date>] <title> [| body]"

const editUsage = "Usage: /edit <id> <date> <HH:MM|allday> [every ...] <title> [| body]"

// shortID is enough of a uuid to address an entry from chat.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatReminder(r *domain.Reminder, now time.Time) string {
	var b strings.Builder
	next := domain.NextOccurrence(r, now)

	marker := "•"
	if !r.IsRecurring && !next.After(now) {
		marker = "⚠️" // overdue one-shot
	}
	fmt.Fprintf(&b, "%s [%s] %s — %s", marker, shortID(r.ID), r.Title, next.Format("Mon 2006-01-02 15:04"))

	if r.IsRecurring {
		b.WriteString(" · " + describeRecurrence(r.Recurrence))
	}
	if r.Body != "" {
		b.WriteString("\n   " + r.Body)
	}
	return b.String()
}

func describeRecurrence(rec *domain.Recurrence) string {
	if rec == nil {
		return ""
	}
	var b strings.Builder
	if rec.Interval > 1 {
		fmt.Fprintf(&b, "🔄 every %d %ss", rec.Interval, rec.Frequency)
	} else {
		fmt.Fprintf(&b, "🔄 every %s", rec.Frequency)
	}
	if rec.Frequency == domain.FreqWeekly && len(rec.DaysOfWeek) > 0 {
		b.WriteString(" on " + domain.FormatWeekdays(rec.DaysOfWeek))
	}
	if rec.Until != nil {
		b.WriteString(" until " + rec.Until.Format("2006-01-02"))
	}
	return b.String()
}

func formatNote(n *domain.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• [%s] %s", shortID(n.ID), n.Title)
	if n.Body != "" {
		b.WriteString("\n   " + n.Body)
	}
	return b.String()
}
