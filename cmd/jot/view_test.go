package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		assert.False(t, isTerminal(&bytes.Buffer{}))
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		defer f.Close()
		assert.False(t, isTerminal(f))
	})

	t.Run("null device", func(t *testing.T) {
		// A character device that is not a tty must not get escape codes.
		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		require.NoError(t, err)
		defer f.Close()
		assert.False(t, isTerminal(f))
	})
}
