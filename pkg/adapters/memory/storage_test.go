package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok, "fresh storage must not report a value")

	require.NoError(t, s.Set(ctx, "notes", "[]"))
	v, ok, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestStorage_UpdateAbortKeepsValue(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "k", "old"))

	boom := errors.New("boom")
	err := s.Update(ctx, "k", func(old string, ok bool) (string, error) {
		return "new", boom
	})
	assert.ErrorIs(t, err, boom)

	v, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "old", v)
}

func TestStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
