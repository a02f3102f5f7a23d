package store

import (
	"context"
	"time"

	"remindbot/internal/domain"
)

// KV is the persistent key-value store the application keeps its serialized
// state in: whole-blob get/set of named strings.
type KV interface {
	// Get returns the value for key; the bool is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TriggerRepo is the notification center's persisted trigger registry.
// Put upserts by trigger id; Delete is idempotent.
type TriggerRepo interface {
	PutTrigger(ctx context.Context, t domain.Trigger, nextFireAt time.Time) error
	DeleteTrigger(ctx context.Context, id string) error
	ListTriggerIDs(ctx context.Context) ([]string, error)
	ListDueTriggers(ctx context.Context, now time.Time, limit int) ([]ScheduledTrigger, error)
	SetTriggerNextFire(ctx context.Context, id string, next time.Time) error
}

// ScheduledTrigger is a registered trigger together with its computed next
// fire instant.
type ScheduledTrigger struct {
	Trigger    domain.Trigger
	NextFireAt time.Time
}

// Repo bundles everything the application persists in one SQLite file.
type Repo interface {
	KV
	TriggerRepo
	Close() error
}
