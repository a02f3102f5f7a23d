package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remindbot/internal/domain"
	"remindbot/internal/scheduler"
)

var (
	errUsage           = errors.New("bad arguments")
	errAmbiguousPrefix = errors.New("id prefix matches more than one entry")
)

// --- Reminders ---

func (r *Router) handleAdd(ctx context.Context, args string) {
	rem, err := parseAdd(args, time.Now())
	if err != nil {
		r.sendText(addUsage)
		return
	}
	if err := r.coord.Create(ctx, rem); err != nil {
		r.log.Error("create reminder failed", zap.Error(err))
		r.sendText("Could not schedule the reminder, nothing was saved. Please try again.")
		return
	}
	r.sendText("Saved ✅\n" + formatReminder(rem, time.Now()))
}

func (r *Router) handleEdit(ctx context.Context, args string) {
	prefix, rest := splitCommand(args)
	if prefix == "" || rest == "" {
		r.sendText(editUsage)
		return
	}
	rs := r.coord.List(ctx)
	idx, err := findReminder(rs, prefix)
	if err != nil {
		r.sendText(lookupError(err))
		return
	}

	rem, err := parseAdd(rest, time.Now())
	if err != nil {
		r.sendText(editUsage)
		return
	}
	rem.ID = rs[idx].ID
	rem.CreatedAt = rs[idx].CreatedAt

	if err := r.coord.Update(ctx, rem); err != nil {
		r.log.Error("update reminder failed", zap.Error(err))
		// The old schedule is already canceled at this point.
		r.sendText("Could not schedule the edited reminder; it currently has no active trigger. Please retry the edit.")
		return
	}
	r.sendText("Updated ✅\n" + formatReminder(rem, time.Now()))
}

func (r *Router) handleList(ctx context.Context) {
	rs := r.coord.List(ctx)
	if len(rs) == 0 {
		r.sendText("No reminders yet. Add one with /add.")
		return
	}
	now := time.Now()
	var b strings.Builder
	b.WriteString("🗒 Reminders (soonest first):\n")
	for i := range rs {
		b.WriteString(formatReminder(&rs[i], now))
		b.WriteByte('\n')
	}
	r.sendText(b.String())
}

func (r *Router) handleDelete(ctx context.Context, args string) {
	prefix := strings.TrimSpace(args)
	if prefix == "" {
		r.sendText("Usage: /del <id>")
		return
	}
	rs := r.coord.List(ctx)
	idx, err := findReminder(rs, prefix)
	if err != nil {
		r.sendText(lookupError(err))
		return
	}
	if err := r.coord.Delete(ctx, rs[idx].ID); err != nil {
		r.log.Error("delete reminder failed", zap.Error(err))
		r.sendText("Could not delete the reminder.")
		return
	}
	r.sendText("Deleted 🗑 " + rs[idx].Title)
}

// --- Notes ---

func (r *Router) handleNoteAdd(ctx context.Context, args string) {
	title, body := splitTitleBody(args)
	if title == "" {
		r.sendText("Usage: /note <title> [| body]")
		return
	}
	now := time.Now()
	ns := append(r.state.Notes(ctx), domain.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err := r.state.SaveNotes(ctx, ns); err != nil {
		r.log.Error("save notes failed", zap.Error(err))
	}
	r.sendText("Noted 📝 " + title)
}

func (r *Router) handleNoteList(ctx context.Context) {
	ns := r.state.Notes(ctx)
	if len(ns) == 0 {
		r.sendText("No notes yet. Add one with /note.")
		return
	}
	var b strings.Builder
	b.WriteString("📒 Notes:\n")
	for i := range ns {
		b.WriteString(formatNote(&ns[i]))
		b.WriteByte('\n')
	}
	r.sendText(b.String())
}

func (r *Router) handleNoteEdit(ctx context.Context, args string) {
	prefix, rest := splitCommand(args)
	title, body := splitTitleBody(rest)
	if prefix == "" || title == "" {
		r.sendText("Usage: /editnote <id> <title> [| body]")
		return
	}
	ns := r.state.Notes(ctx)
	idx, err := findNote(ns, prefix)
	if err != nil {
		r.sendText(lookupError(err))
		return
	}
	ns[idx].Title = title
	ns[idx].Body = body
	ns[idx].UpdatedAt = time.Now()
	if err := r.state.SaveNotes(ctx, ns); err != nil {
		r.log.Error("save notes failed", zap.Error(err))
	}
	r.sendText("Note updated ✅")
}

func (r *Router) handleNoteDelete(ctx context.Context, args string) {
	prefix := strings.TrimSpace(args)
	if prefix == "" {
		r.sendText("Usage: /delnote <id>")
		return
	}
	ns := r.state.Notes(ctx)
	idx, err := findNote(ns, prefix)
	if err != nil {
		r.sendText(lookupError(err))
		return
	}
	deleted := ns[idx].Title
	ns = append(ns[:idx], ns[idx+1:]...)
	if err := r.state.SaveNotes(ctx, ns); err != nil {
		r.log.Error("save notes failed", zap.Error(err))
	}
	r.sendText("Note deleted 🗑 " + deleted)
}

// --- Argument parsing ---

// parseAdd builds a reminder from the /add argument string:
//
//	<date> <HH:MM|allday> [every [N] day|week|month|year] [on mon,wed,fri] [until <date>] <title> [| body]
//
// A fresh id is always assigned; /edit replaces it with the existing one.
func parseAdd(args string, now time.Time) (*domain.Reminder, error) {
	head, body := splitTitleBody(args)
	fields := strings.Fields(head)
	if len(fields) < 3 {
		return nil, errUsage
	}

	startDate, err := domain.ParseDate(fields[0], now, time.Local)
	if err != nil {
		return nil, err
	}

	startM, isAllDay := 0, false
	if strings.EqualFold(fields[1], "allday") {
		isAllDay = true
	} else {
		if startM, err = domain.ParseClock(fields[1]); err != nil {
			return nil, err
		}
	}

	rest := fields[2:]
	var rec *domain.Recurrence
loop:
	for len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "every":
			if len(rest) < 2 {
				return nil, errUsage
			}
			interval, next := 1, 1
			if n, convErr := strconv.Atoi(rest[1]); convErr == nil {
				if len(rest) < 3 {
					return nil, errUsage
				}
				interval, next = n, 2
			}
			freq, err := domain.ParseFrequency(rest[next])
			if err != nil {
				return nil, err
			}
			rec = &domain.Recurrence{Frequency: freq, Interval: interval}
			rest = rest[next+1:]
		case "on":
			if rec == nil || len(rest) < 2 {
				return nil, errUsage
			}
			days, err := domain.ParseWeekdays(rest[1])
			if err != nil {
				return nil, err
			}
			rec.DaysOfWeek = days
			rest = rest[2:]
		case "until":
			if rec == nil || len(rest) < 2 {
				return nil, errUsage
			}
			until, err := domain.ParseDate(rest[1], now, time.Local)
			if err != nil {
				return nil, err
			}
			rec.Until = &until
			rest = rest[2:]
		default:
			break loop
		}
	}

	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		return nil, errUsage
	}

	return &domain.Reminder{
		ID:          uuid.NewString(),
		Title:       title,
		Body:        body,
		StartDate:   startDate,
		StartM:      startM,
		IsAllDay:    isAllDay,
		IsRecurring: rec != nil,
		Recurrence:  rec,
		CreatedAt:   now,
	}, nil
}

// splitTitleBody splits "title | body" at the first pipe.
func splitTitleBody(s string) (title, body string) {
	if i := strings.Index(s, "|"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s), ""
}

func findReminder(rs []domain.Reminder, prefix string) (int, error) {
	idx := -1
	for i := range rs {
		if strings.HasPrefix(rs[i].ID, prefix) {
			if idx >= 0 {
				return -1, errAmbiguousPrefix
			}
			idx = i
		}
	}
	if idx < 0 {
		return -1, scheduler.ErrNotFound
	}
	return idx, nil
}

func findNote(ns []domain.Note, prefix string) (int, error) {
	idx := -1
	for i := range ns {
		if strings.HasPrefix(ns[i].ID, prefix) {
			if idx >= 0 {
				return -1, errAmbiguousPrefix
			}
			idx = i
		}
	}
	if idx < 0 {
		return -1, scheduler.ErrNotFound
	}
	return idx, nil
}

func lookupError(err error) string {
	switch {
	case errors.Is(err, errAmbiguousPrefix):
		return "That id prefix matches more than one entry; use more characters."
	case errors.Is(err, scheduler.ErrNotFound):
		return "Nothing found with that id."
	default:
		return fmt.Sprintf("Lookup failed: %v", err)
	}
}
