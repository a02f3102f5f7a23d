package telegram

import (
	"errors"
	"testing"
	"time"

	"remindbot/internal/domain"
	"remindbot/internal/scheduler"
)

var testNow = time.Date(2026, time.August, 26, 15, 0, 0, 0, time.Local)

func TestParseAdd_OneShot(t *testing.T) {
	r, err := parseAdd("2026-09-01 14:30 Dentist | bring insurance card", testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.ID == "" {
		t.Fatal("must assign an id")
	}
	if r.Title != "Dentist" || r.Body != "bring insurance card" {
		t.Fatalf("title/body mangled: %q / %q", r.Title, r.Body)
	}
	if r.IsRecurring || r.Recurrence != nil {
		t.Fatal("must be a one-shot")
	}
	if r.StartM != 14*60+30 {
		t.Fatalf("start time: got %d", r.StartM)
	}
	if !r.StartDate.Equal(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("start date: got %v", r.StartDate)
	}
}

func TestParseAdd_AllDay(t *testing.T) {
	r, err := parseAdd("tomorrow allday Pay rent", testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.IsAllDay {
		t.Fatal("want all-day")
	}
	if !r.StartDate.Equal(time.Date(2026, time.August, 27, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("start date: got %v", r.StartDate)
	}
}

func TestParseAdd_WeeklyWithDaysAndUntil(t *testing.T) {
	r, err := parseAdd("today 18:00 every week on mon,wed,fri until 2026-12-31 Gym | leg day", testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !r.IsRecurring || r.Recurrence == nil {
		t.Fatal("want recurring")
	}
	rec := r.Recurrence
	if rec.Frequency != domain.FreqWeekly || rec.Interval != 1 {
		t.Fatalf("recurrence: %+v", rec)
	}
	if len(rec.DaysOfWeek) != 3 || rec.DaysOfWeek[0] != 1 || rec.DaysOfWeek[2] != 5 {
		t.Fatalf("weekdays: %v", rec.DaysOfWeek)
	}
	if rec.Until == nil || rec.Until.Format("2006-01-02") != "2026-12-31" {
		t.Fatalf("until: %v", rec.Until)
	}
	if r.Title != "Gym" || r.Body != "leg day" {
		t.Fatalf("title/body: %q / %q", r.Title, r.Body)
	}
}

func TestParseAdd_IntervalForm(t *testing.T) {
	r, err := parseAdd("today 08:00 every 2 week Standup", testNow)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Recurrence.Interval != 2 || r.Recurrence.Frequency != domain.FreqWeekly {
		t.Fatalf("recurrence: %+v", r.Recurrence)
	}
}

func TestParseAdd_Rejects(t *testing.T) {
	cases := []string{
		"",
		"today",
		"today 08:00",               // no title
		"today 25:00 X",             // bad clock
		"someday 08:00 X",           // bad date
		"today 08:00 every X",       // bad frequency
		"today 08:00 on mon,wed X",  // "on" without "every"
		"today 08:00 until today X", // "until" without "every"
		"today 08:00 every",         // dangling keyword
	}
	for _, in := range cases {
		if _, err := parseAdd(in, testNow); err == nil {
			t.Fatalf("%q: want error", in)
		}
	}
}

func TestFindReminder_PrefixResolution(t *testing.T) {
	rs := []domain.Reminder{
		{ID: "aaa111"},
		{ID: "aab222"},
		{ID: "bbb333"},
	}

	idx, err := findReminder(rs, "bbb")
	if err != nil || idx != 2 {
		t.Fatalf("unique prefix: idx=%d err=%v", idx, err)
	}
	if _, err := findReminder(rs, "aa"); !errors.Is(err, errAmbiguousPrefix) {
		t.Fatalf("want ambiguous, got %v", err)
	}
	if _, err := findReminder(rs, "zzz"); !errors.Is(err, scheduler.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, args := splitCommand("/add today 08:00 X")
	if cmd != "/add" || args != "today 08:00 X" {
		t.Fatalf("got %q / %q", cmd, args)
	}
	cmd, args = splitCommand("/list")
	if cmd != "/list" || args != "" {
		t.Fatalf("got %q / %q", cmd, args)
	}
}
