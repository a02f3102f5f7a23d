package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock = errors.New("invalid time, expected HH:MM")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrEmptyWeekday = errors.New("empty weekday list")
)

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

var weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseClock parses "HH:MM" into minutes since midnight (0..1439).
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// ParseDate parses "YYYY-MM-DD" (plus the shortcuts "today" and "tomorrow")
// into a local-midnight date in loc.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	case "tomorrow":
		y, m, d := now.In(loc).AddDate(0, 0, 1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseFrequency maps user input like "day" or "weekly" to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return FreqDaily, nil
	case "week", "weekly":
		return FreqWeekly, nil
	case "month", "monthly":
		return FreqMonthly, nil
	case "year", "yearly":
		return FreqYearly, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidFrequency, s)
}

// ParseWeekdays parses a comma-separated weekday list ("mon,wed,fri" or
// "1,3,5") into distinct sorted weekday numbers 0 (Sunday) .. 6 (Saturday).
func ParseWeekdays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyWeekday
	}
	var seen [7]bool
	for _, raw := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		wd, ok := weekdayNames[name]
		if !ok {
			n, err := strconv.Atoi(name)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("%w: %s", ErrInvalidWeekday, raw)
			}
			wd = n
		}
		seen[wd] = true
	}
	var out []int
	for wd := 0; wd <= 6; wd++ {
		if seen[wd] {
			out = append(out, wd)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyWeekday
	}
	return out, nil
}

// FormatMinutes returns HH:MM for minutes since midnight (00:00..23:59).
func FormatMinutes(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatWeekdays renders a weekday set as "Mon, Wed, Fri".
func FormatWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, wd := range days {
		if wd >= 0 && wd <= 6 {
			names = append(names, weekdayShort[wd])
		}
	}
	return strings.Join(names, ", ")
}
