package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uninorte/lead-system/internal/core/domain"
)

var coordinator = Identity{ID: "u-2", Name: "Coordenador Demo", Role: "coordenador"}

func TestNew_Valid(t *testing.T) {
	s, err := New("tok", coordinator)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoordinator, s.Role())
	assert.Equal(t, UserRef{ID: "u-2", Name: "Coordenador Demo"}, s.User())
	assert.Equal(t, "tok", s.Credential())
}

func TestNew_RejectsUnknownRole(t *testing.T) {
	_, err := New("tok", Identity{ID: "u-9", Name: "Ghost", Role: "gerente"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSession))
	assert.True(t, errors.Is(err, domain.ErrUnknownRole))
}

func TestNew_RejectsPartialState(t *testing.T) {
	_, err := New("", coordinator)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = New("tok", Identity{Name: "No ID", Role: "vendedor"})
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestHolder_EstablishThenRestoreAfterRestart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewHolder(store, zerolog.Nop())
	established, err := first.Establish(ctx, "tok-1", coordinator)
	require.NoError(t, err)

	// A fresh holder over the same storage simulates a process restart.
	second := NewHolder(store, zerolog.Nop())
	_, ok := second.Current()
	require.False(t, ok)

	restored, ok := second.Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, established.User(), restored.User())
	assert.Equal(t, established.Role(), restored.Role())
	assert.Equal(t, established.Credential(), restored.Credential())

	current, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, restored, current)
}

func TestHolder_ClearThenRestoreYieldsNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store, zerolog.Nop())

	_, err := h.Establish(ctx, "tok-1", coordinator)
	require.NoError(t, err)
	require.NoError(t, h.Clear(ctx))

	_, ok := h.Current()
	assert.False(t, ok)

	_, ok = NewHolder(store, zerolog.Nop()).Restore(ctx)
	assert.False(t, ok)
}

func TestHolder_ClearIsIdempotent(t *testing.T) {
	h := NewHolder(NewMemoryStore(), zerolog.Nop())
	require.NoError(t, h.Clear(context.Background()))
	require.NoError(t, h.Clear(context.Background()))
}

func TestHolder_RestoreTreatsMalformedAsAbsent(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]byte{
		"not json":         []byte("{oops"),
		"missing token":    []byte(`{"user":{"id":"u-1","nome":"A","tipo":"vendedor"}}`),
		"missing identity": []byte(`{"credential":"tok"}`),
		"unknown role":     []byte(`{"credential":"tok","user":{"id":"u-1","nome":"A","tipo":"root"}}`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Save(ctx, data))

			_, ok := NewHolder(store, zerolog.Nop()).Restore(ctx)
			assert.False(t, ok)
		})
	}
}

func TestHolder_EstablishInvalidKeepsPreviousSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	h := NewHolder(store, zerolog.Nop())

	_, err := h.Establish(ctx, "tok-1", coordinator)
	require.NoError(t, err)

	_, err = h.Establish(ctx, "tok-2", Identity{ID: "u-3", Name: "X", Role: "root"})
	require.Error(t, err)

	current, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-1", current.Credential())

	restored, ok := NewHolder(store, zerolog.Nop()).Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-1", restored.Credential())
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(context.Context, []byte) error { return errors.New("disk full") }

func TestHolder_EstablishPersistFailure(t *testing.T) {
	h := NewHolder(&failingStore{}, zerolog.Nop())
	_, err := h.Establish(context.Background(), "tok", coordinator)
	require.Error(t, err)

	_, ok := h.Current()
	assert.False(t, ok)
}

func TestHolder_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(NewMemoryStore(), zerolog.Nop())

	_, err := h.Establish(ctx, "tok-a", coordinator)
	require.NoError(t, err)
	_, err = h.Establish(ctx, "tok-b", Identity{ID: "u-1", Name: "Vendedor Demo", Role: "vendedor"})
	require.NoError(t, err)

	current, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, domain.RoleSeller, current.Role())
	assert.Equal(t, "tok-b", current.Credential())
}
