// Package notify implements the platform notification service: a persisted
// trigger registry with a delivery loop that fires alerts through a sender.
// The scheduling engine only ever talks to the Service interface; delivery
// timing past registration is owned entirely by this package.
package notify

import (
	"context"

	"remindbot/internal/domain"
)

// Service is the scheduling surface the application consumes.
type Service interface {
	// RequestPermission checks that alerts can actually be delivered.
	// It is called once at startup before any scheduling.
	RequestPermission(ctx context.Context) (bool, error)
	// Schedule registers (or replaces) a trigger under its id.
	Schedule(ctx context.Context, t domain.Trigger) error
	// Cancel removes a trigger; canceling an unknown id is not an error.
	Cancel(ctx context.Context, id string) error
	// List returns the ids of all registered triggers.
	List(ctx context.Context) ([]string, error)
}

// Sender delivers a single alert to the user.
type Sender interface {
	Send(title, body string) error
	// Probe verifies the delivery channel is usable.
	Probe(ctx context.Context) error
}
