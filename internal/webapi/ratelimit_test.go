package webapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmitLimiter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewSubmitLimiter(1, 2)
	l.now = func() time.Time { return now }

	ok, _ := l.Reserve("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Reserve("10.0.0.1")
	assert.True(t, ok)

	ok, wait := l.Reserve("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.01)

	ok, _ = l.Reserve("10.0.0.2")
	assert.True(t, ok, "clients have separate budgets")

	now = now.Add(time.Second)
	ok, _ = l.Reserve("10.0.0.1")
	assert.True(t, ok, "a token refills after one second")
	assert.Equal(t, 2, l.Clients())
}

func TestSubmitLimiterPrune(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewSubmitLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Reserve("stale")
	now = now.Add(time.Hour)
	l.Reserve("fresh")
	l.prune(now)
	assert.Equal(t, 1, l.Clients())
}
