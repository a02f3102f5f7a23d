// Package scheduler keeps the persisted reminder set and the platform
// trigger registry consistent: it decides when a full reschedule pass is
// needed and orchestrates create, edit and delete flows.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"remindbot/internal/domain"
	"remindbot/internal/notify"
	"remindbot/internal/store"
)

const dateLayout = "2006-01-02"

var ErrNotFound = errors.New("reminder not found")

// Coordinator orchestrates scheduling against the notification service and
// persistence of the reminder set. All methods run on the single
// update-handling loop; there is no internal locking.
type Coordinator struct {
	state *store.State
	svc   notify.Service
	log   *zap.Logger
	now   func() time.Time
}

func New(state *store.State, svc notify.Service, log *zap.Logger) *Coordinator {
	return &Coordinator{state: state, svc: svc, log: log, now: time.Now}
}

// NeedsInitialization reports whether a full reschedule pass is still due
// today: true when the persisted flag is absent or the persisted date is not
// today's calendar date. This bounds the pass to once per calendar day so
// restarts within the same day do not duplicate triggers.
func (c *Coordinator) NeedsInitialization(ctx context.Context) bool {
	initialized, date := c.state.InitMarker(ctx)
	if !initialized {
		return true
	}
	return date != c.today()
}

// MarkInitialized persists that today's reschedule pass completed.
func (c *Coordinator) MarkInitialized(ctx context.Context) error {
	return c.state.SetInitMarker(ctx, c.today())
}

// InitializeOnStart runs the full reschedule pass if it is still due today
// and at least one reminder exists. The initialization marker is only
// written after a pass with no scheduling failure, so a failed pass is
// retried on the next start (or the next calendar day).
func (c *Coordinator) InitializeOnStart(ctx context.Context) error {
	if !c.NeedsInitialization(ctx) {
		c.log.Debug("reschedule pass already done today")
		return nil
	}
	rs := c.state.Reminders(ctx)
	if len(rs) == 0 {
		return nil
	}

	now := c.now()
	failed := 0
	for i := range rs {
		if err := c.schedule(ctx, &rs[i], now); err != nil {
			failed++
			c.log.Error("reschedule reminder failed", zap.String("id", rs[i].ID), zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("reschedule pass: %d of %d reminders failed", failed, len(rs))
	}
	if err := c.MarkInitialized(ctx); err != nil {
		return err
	}
	ids, err := c.svc.List(ctx)
	if err != nil {
		c.log.Warn("list registered triggers failed", zap.Error(err))
	}
	c.log.Info("reschedule pass complete",
		zap.Int("reminders", len(rs)), zap.Int("triggers", len(ids)))
	return nil
}

// Create schedules a new reminder and, on success, appends it to the
// persisted set. A scheduling failure aborts the save; triggers already
// registered earlier in the batch are left in place and reconciled by the
// next calendar-day pass.
func (c *Coordinator) Create(ctx context.Context, r *domain.Reminder) error {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return err
	}
	if !r.IsRecurring {
		exp := r.Anchor().Add(24 * time.Hour)
		r.ExpiresAt = &exp
	}

	if err := c.schedule(ctx, r, c.now()); err != nil {
		return err
	}

	rs := append(c.state.Reminders(ctx), *r)
	if err := c.state.SaveReminders(ctx, rs); err != nil {
		c.log.Error("persist reminders failed", zap.Error(err))
	}
	return nil
}

// Update cancels every trigger variant of the old registration first, then
// schedules the edited reminder. On a scheduling failure the persisted state
// is left untouched: the reminder temporarily has no active trigger until
// the user retries.
func (c *Coordinator) Update(ctx context.Context, r *domain.Reminder) error {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return err
	}

	rs := c.state.Reminders(ctx)
	idx := -1
	for i := range rs {
		if rs[i].ID == r.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if !r.IsRecurring {
		exp := r.Anchor().Add(24 * time.Hour)
		r.ExpiresAt = &exp
	} else {
		r.ExpiresAt = nil
	}

	c.cancelAll(ctx, r.ID)
	if err := c.schedule(ctx, r, c.now()); err != nil {
		return err
	}

	rs[idx] = *r
	if err := c.state.SaveReminders(ctx, rs); err != nil {
		c.log.Error("persist reminders failed", zap.Error(err))
	}
	return nil
}

// Delete cancels every trigger variant and removes the reminder from the
// persisted set. Cancellation failures are logged but never block the
// removal.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	rs := c.state.Reminders(ctx)
	kept := rs[:0]
	found := false
	for _, r := range rs {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrNotFound
	}

	c.cancelAll(ctx, id)

	if err := c.state.SaveReminders(ctx, kept); err != nil {
		c.log.Error("persist reminders failed", zap.Error(err))
	}
	return nil
}

// List returns the persisted reminders ordered by next occurrence.
func (c *Coordinator) List(ctx context.Context) []domain.Reminder {
	rs := c.state.Reminders(ctx)
	domain.SortByNext(rs, c.now())
	return rs
}

// schedule registers every trigger of one reminder in deterministic order,
// stopping at the first failure. Earlier registrations are not rolled back.
func (c *Coordinator) schedule(ctx context.Context, r *domain.Reminder, now time.Time) error {
	for _, t := range domain.Materialize(r, now) {
		if err := c.svc.Schedule(ctx, t); err != nil {
			return fmt.Errorf("schedule %s: %w", t.ID, err)
		}
	}
	return nil
}

// cancelAll probes all eight trigger id variants; which subset was actually
// registered is never persisted.
func (c *Coordinator) cancelAll(ctx context.Context, id string) {
	for _, tid := range domain.CancelIDs(id) {
		if err := c.svc.Cancel(ctx, tid); err != nil {
			c.log.Warn("cancel trigger failed", zap.String("trigger", tid), zap.Error(err))
		}
	}
}

func (c *Coordinator) today() string {
	return c.now().Format(dateLayout)
}
