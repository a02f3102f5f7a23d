package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"remindbot/internal/domain"
)

// KV keys for the persisted application state.
const (
	keyReminders       = "reminders"
	keyNotes           = "notes"
	keyInitialized     = "initialized"
	keyInitializedDate = "initializedDate"
)

// State persists the reminder set, the note set and the initialization
// marker as whole JSON blobs in the key-value store. A blob that cannot be
// read or parsed is logged and treated as absent so the application keeps
// running with an empty set instead of crashing.
type State struct {
	kv  KV
	log *zap.Logger
}

func NewState(kv KV, log *zap.Logger) *State {
	return &State{kv: kv, log: log}
}

// Reminders loads the persisted reminder set. Missing or malformed data
// yields an empty set; individual records that fail validation (a
// hand-edited blob, an older-version record) are dropped and logged rather
// than handed to the engine.
func (s *State) Reminders(ctx context.Context) []domain.Reminder {
	var rs []domain.Reminder
	if !s.loadBlob(ctx, keyReminders, &rs) {
		return nil
	}
	kept := rs[:0]
	for i := range rs {
		rs[i].Normalize()
		if err := rs[i].Validate(); err != nil {
			s.log.Warn("dropping invalid reminder record",
				zap.String("id", rs[i].ID), zap.Error(err))
			continue
		}
		kept = append(kept, rs[i])
	}
	return kept
}

// SaveReminders replaces the persisted reminder set.
func (s *State) SaveReminders(ctx context.Context, rs []domain.Reminder) error {
	return s.saveBlob(ctx, keyReminders, rs)
}

// Notes loads the persisted note set. Missing or malformed data yields an
// empty set.
func (s *State) Notes(ctx context.Context) []domain.Note {
	var ns []domain.Note
	if !s.loadBlob(ctx, keyNotes, &ns) {
		return nil
	}
	return ns
}

// SaveNotes replaces the persisted note set.
func (s *State) SaveNotes(ctx context.Context, ns []domain.Note) error {
	return s.saveBlob(ctx, keyNotes, ns)
}

// InitMarker returns the persisted initialization flag and date. Read
// failures count as "never initialized".
func (s *State) InitMarker(ctx context.Context) (initialized bool, date string) {
	flag, ok, err := s.kv.Get(ctx, keyInitialized)
	if err != nil {
		s.log.Error("read init flag failed", zap.Error(err))
		return false, ""
	}
	if !ok || flag != "true" {
		return false, ""
	}
	date, _, err = s.kv.Get(ctx, keyInitializedDate)
	if err != nil {
		s.log.Error("read init date failed", zap.Error(err))
		return false, ""
	}
	return true, date
}

// SetInitMarker persists initialized=true with the given calendar date.
func (s *State) SetInitMarker(ctx context.Context, date string) error {
	if err := s.kv.Set(ctx, keyInitialized, "true"); err != nil {
		return fmt.Errorf("set init flag: %w", err)
	}
	if err := s.kv.Set(ctx, keyInitializedDate, date); err != nil {
		return fmt.Errorf("set init date: %w", err)
	}
	return nil
}

func (s *State) loadBlob(ctx context.Context, key string, out any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error("load blob failed, proceeding with empty set",
			zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Error("malformed blob, proceeding with empty set",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *State) saveBlob(ctx context.Context, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
