package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Holder owns the lifecycle of the current session: restored at boot, set at
// login, torn down at logout. Writes are serialized and the last one wins.
type Holder struct {
	store Store
	log   zerolog.Logger

	mu      sync.RWMutex
	current *Session
}

func NewHolder(store Store, log zerolog.Logger) *Holder {
	return &Holder{store: store, log: log}
}

// Restore rebuilds the session from the store. Absent and malformed records
// both yield no session; the failure is never surfaced to the caller.
func (h *Holder) Restore(ctx context.Context) (Session, bool) {
	data, err := h.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			h.log.Debug().Err(err).Msg("persisted session unreadable, starting signed out")
		}
		h.set(nil)
		return Session{}, false
	}

	s, err := unmarshal(data)
	if err != nil {
		h.log.Debug().Err(err).Msg("persisted session malformed, starting signed out")
		h.set(nil)
		return Session{}, false
	}

	h.set(&s)
	return s, true
}

// Establish validates and persists a new session, then makes it current.
// Nothing changes when validation or persistence fails.
func (h *Holder) Establish(ctx context.Context, credential string, id Identity) (Session, error) {
	s, err := New(credential, id)
	if err != nil {
		return Session{}, err
	}

	data, err := s.marshal()
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Save(ctx, data); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	h.current = &s
	return s, nil
}

// Clear removes the persisted record and drops the in-memory session. Calling
// it while signed out is a no-op.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
	if err := h.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Current returns the active session, if any.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

func (h *Holder) set(s *Session) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}
