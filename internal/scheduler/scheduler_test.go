package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdg-garage/garage-levels/internal/cooldown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepJob(t *testing.T) {
	s, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	gate := cooldown.NewMemory(time.Millisecond)
	_, _ = gate.Allow(context.Background(), "u", time.Now().Add(-time.Second))
	require.Equal(t, 1, gate.Len())

	require.NoError(t, s.AddSweep("cooldown-sweep", 20*time.Millisecond, gate))
	s.Start()
	defer func() { _ = s.Shutdown() }()

	assert.Eventually(t, func() bool { return gate.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestAddSweep_InvalidInterval(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	assert.Error(t, s.AddSweep("bad", 0, cooldown.NewMemory(time.Second)))
}
