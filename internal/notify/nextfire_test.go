package notify

import (
	"testing"
	"time"

	"remindbot/internal/domain"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestNextFire_AbsoluteReturnsInstantEvenWhenPast(t *testing.T) {
	past := at(2026, time.August, 20, 8, 0)
	got, err := nextFire(domain.FireSpec{Kind: domain.FireAbsolute, At: past}, at(2026, time.August, 26, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(past) {
		t.Fatalf("stale one-shot must become due immediately: want %v, got %v", past, got)
	}
}

func TestNextFire_DailySameDayWhenTimeAhead(t *testing.T) {
	spec := domain.FireSpec{Kind: domain.FireDaily, Hour: 7, Minute: 30}
	got, err := nextFire(spec, at(2026, time.August, 26, 7, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := at(2026, time.August, 26, 7, 30); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNextFire_DailyRollsToTomorrowWhenTimePassed(t *testing.T) {
	spec := domain.FireSpec{Kind: domain.FireDaily, Hour: 7, Minute: 30}
	got, err := nextFire(spec, at(2026, time.August, 26, 8, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := at(2026, time.August, 27, 7, 30); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNextFire_WeeklyFindsNextMatchingWeekday(t *testing.T) {
	// Platform weekday 2 = Monday; 2026-08-26 is a Wednesday.
	spec := domain.FireSpec{Kind: domain.FireWeekly, Hour: 9, Minute: 0, Weekday: 2}
	got, err := nextFire(spec, at(2026, time.August, 26, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := at(2026, time.August, 31, 9, 0); !got.Equal(want) {
		t.Fatalf("want next Monday %v, got %v", want, got)
	}
}

func TestNextFire_WeeklyRejectsBadWeekday(t *testing.T) {
	spec := domain.FireSpec{Kind: domain.FireWeekly, Hour: 9, Weekday: 0}
	if _, err := nextFire(spec, at(2026, time.August, 26, 10, 0)); err == nil {
		t.Fatal("want error for weekday 0")
	}
}

func TestNextFire_MonthlyDay31SkipsShortMonths(t *testing.T) {
	spec := domain.FireSpec{Kind: domain.FireMonthly, Hour: 9, Minute: 0, Day: 31}
	got, err := nextFire(spec, at(2026, time.February, 10, 12, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := at(2026, time.March, 31, 9, 0); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNextFire_Yearly(t *testing.T) {
	spec := domain.FireSpec{Kind: domain.FireYearly, Hour: 9, Minute: 0, Day: 12, Month: time.October}
	got, err := nextFire(spec, at(2026, time.August, 26, 12, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := at(2026, time.October, 12, 9, 0); !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
