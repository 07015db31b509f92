package cooldown

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func TestMemory_Allow(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	ok, err := m.Allow(ctx, "u", t0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = m.Allow(ctx, "u", t0.Add(30*time.Second))
	assert.False(t, ok, "inside the window")

	ok, _ = m.Allow(ctx, "other", t0.Add(30*time.Second))
	assert.True(t, ok, "windows are per member")

	// A rejected attempt does not extend the window.
	ok, _ = m.Allow(ctx, "u", t0.Add(time.Minute))
	assert.True(t, ok)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_, _ = m.Allow(ctx, "a", t0)
	_, _ = m.Allow(ctx, "b", t0.Add(45*time.Second))

	assert.Equal(t, 1, m.Sweep(t0.Add(time.Minute)))
	assert.Equal(t, 1, m.Len())

	ok, _ := m.Allow(ctx, "b", t0.Add(time.Minute))
	assert.False(t, ok)
}

func TestRedis_Allow(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	r, err := NewRedis(ctx, url, time.Minute)
	require.NoError(t, err)
	defer r.Close()

	id := uuid.NewString()
	ok, err := r.Allow(ctx, id, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Allow(ctx, id, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}
