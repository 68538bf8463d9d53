package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"Pending", "Ready", "Completed", "Cancelled"} {
		status, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), status)
	}

	for _, raw := range []string{"", "pending", "READY", "Shipped", "Done"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "raw=%q", raw)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusReady, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusReady, StatusCompleted, true},
		{StatusReady, StatusCancelled, true},
		{StatusReady, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusReady, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	// Re-setting the current status is always allowed.
	for _, s := range []Status{StatusPending, StatusReady, StatusCompleted, StatusCancelled} {
		assert.True(t, s.CanTransitionTo(s))
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusReady.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
