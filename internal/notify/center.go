package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"remindbot/internal/domain"
	"remindbot/internal/store"
)

// dueBatchLimit caps how many due triggers one tick processes.
const dueBatchLimit = 100

// Center is the in-process notification center. It persists registered
// triggers in the store and delivers due alerts through the sender on a
// fixed-interval polling loop.
type Center struct {
	repo     store.TriggerRepo
	sender   Sender
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
}

// NewCenter creates a notification center polling every 30s.
func NewCenter(repo store.TriggerRepo, sender Sender, log *zap.Logger) *Center {
	return &Center{
		repo:     repo,
		sender:   sender,
		log:      log,
		interval: 30 * time.Second,
		now:      time.Now,
	}
}

// RequestPermission probes the delivery channel. A failed probe means alerts
// cannot reach the user and nothing should be scheduled.
func (c *Center) RequestPermission(ctx context.Context) (bool, error) {
	if err := c.sender.Probe(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Schedule registers a trigger, computing its first fire instant from the
// spec. Re-registering an id replaces the previous registration.
func (c *Center) Schedule(ctx context.Context, t domain.Trigger) error {
	next, err := nextFire(t.Spec, c.now())
	if err != nil {
		return fmt.Errorf("trigger %s: %w", t.ID, err)
	}
	if err := c.repo.PutTrigger(ctx, t, next); err != nil {
		return fmt.Errorf("trigger %s: %w", t.ID, err)
	}
	c.log.Debug("trigger scheduled",
		zap.String("id", t.ID),
		zap.String("kind", string(t.Spec.Kind)),
		zap.Time("next", next),
	)
	return nil
}

// Cancel removes a trigger registration; unknown ids are a no-op.
func (c *Center) Cancel(ctx context.Context, id string) error {
	return c.repo.DeleteTrigger(ctx, id)
}

// List returns the ids of all registered triggers.
func (c *Center) List(ctx context.Context) ([]string, error) {
	return c.repo.ListTriggerIDs(ctx)
}

// Run polls for due triggers until ctx is canceled.
func (c *Center) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("notification center stopping")
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick performs one delivery cycle: find due triggers, send, advance or drop.
func (c *Center) tick(ctx context.Context) {
	now := c.now()

	due, err := c.repo.ListDueTriggers(ctx, now, dueBatchLimit)
	if err != nil {
		c.log.Error("list due triggers failed", zap.Error(err))
		return
	}
	for _, st := range due {
		t := st.Trigger
		if err := c.sender.Send(t.Title, t.Body); err != nil {
			// Leave the trigger due; the next tick retries.
			c.log.Error("alert delivery failed", zap.Error(err), zap.String("id", t.ID))
			continue
		}

		if t.Spec.Kind == domain.FireAbsolute {
			if err := c.repo.DeleteTrigger(ctx, t.ID); err != nil {
				c.log.Error("drop fired one-shot failed", zap.Error(err), zap.String("id", t.ID))
			}
			continue
		}

		next, err := nextFire(t.Spec, now)
		if err != nil {
			c.log.Error("advance trigger failed", zap.Error(err), zap.String("id", t.ID))
			continue
		}
		if err := c.repo.SetTriggerNextFire(ctx, t.ID, next); err != nil {
			c.log.Error("reschedule trigger failed", zap.Error(err), zap.String("id", t.ID))
		}
	}
}
