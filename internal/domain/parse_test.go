package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"07:30", 7*60 + 30, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{" 9:05 ", 9*60 + 5, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: want error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: want %d, got %d", c.in, c.want, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	now := at(2026, time.August, 26, 15, 0)

	got, err := ParseDate("2026-09-01", now, time.Local)
	if err != nil {
		t.Fatalf("explicit date: %v", err)
	}
	if !got.Equal(day(2026, time.September, 1)) {
		t.Fatalf("explicit date: got %v", got)
	}

	got, err = ParseDate("today", now, time.Local)
	if err != nil || !got.Equal(day(2026, time.August, 26)) {
		t.Fatalf("today: got %v, err %v", got, err)
	}

	got, err = ParseDate("Tomorrow", now, time.Local)
	if err != nil || !got.Equal(day(2026, time.August, 27)) {
		t.Fatalf("tomorrow: got %v, err %v", got, err)
	}

	if _, err := ParseDate("01/09/2026", now, time.Local); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestParseFrequency(t *testing.T) {
	cases := map[string]Frequency{
		"day": FreqDaily, "daily": FreqDaily,
		"week": FreqWeekly, "Weekly": FreqWeekly,
		"month": FreqMonthly, "monthly": FreqMonthly,
		"year": FreqYearly, "yearly": FreqYearly,
	}
	for in, want := range cases {
		got, err := ParseFrequency(in)
		if err != nil || got != want {
			t.Fatalf("%q: want %s, got %s (err %v)", in, want, got, err)
		}
	}
	if _, err := ParseFrequency("fortnight"); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("want ErrInvalidFrequency, got %v", err)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("fri, Mon,wed")
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("names: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names: want %v, got %v", want, got)
		}
	}

	got, err = ParseWeekdays("5,1,3,1")
	if err != nil || len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("numbers with duplicate: got %v, err %v", got, err)
	}

	if _, err := ParseWeekdays("7"); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("out of range: want ErrInvalidWeekday, got %v", err)
	}
	if _, err := ParseWeekdays(""); !errors.Is(err, ErrEmptyWeekday) {
		t.Fatalf("empty: want ErrEmptyWeekday, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Reminder{
		ID:        "r1",
		Title:     "x",
		StartDate: day(2026, time.September, 1),
		StartM:    9 * 60,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid one-shot: %v", err)
	}

	r := base
	r.ID = ""
	if err := r.Validate(); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("want ErrEmptyID, got %v", err)
	}

	r = base
	r.StartM = 1440
	if err := r.Validate(); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("want ErrInvalidStartTime, got %v", err)
	}

	r = base
	r.IsRecurring = true
	if err := r.Validate(); !errors.Is(err, ErrNoRecurrence) {
		t.Fatalf("want ErrNoRecurrence, got %v", err)
	}

	r.Recurrence = &Recurrence{Frequency: "fortnight", Interval: 1}
	if err := r.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("want ErrInvalidFrequency, got %v", err)
	}

	r.Recurrence = &Recurrence{Frequency: FreqWeekly, Interval: 1, DaysOfWeek: []int{8}}
	if err := r.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("want ErrInvalidWeekday, got %v", err)
	}
}
