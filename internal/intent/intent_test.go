package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriggerRunsRegisteredHandler(t *testing.T) {
	d := NewDispatcher()

	calls := 0
	d.Register(ManualBackup, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, d.Trigger(context.Background(), ManualBackup))
	require.NoError(t, d.Trigger(context.Background(), ManualBackup))
	require.Equal(t, 2, calls)
}

func TestTriggerUnknownIntent(t *testing.T) {
	d := NewDispatcher()

	err := d.Trigger(context.Background(), QuickNewEvent)
	require.ErrorIs(t, err, ErrUnknownIntent)
}

func TestTriggerWrapsHandlerError(t *testing.T) {
	d := NewDispatcher()

	boom := errors.New("printer offline")
	d.Register(PrintCurrentView, func(ctx context.Context) error {
		return boom
	})

	err := d.Trigger(context.Background(), PrintCurrentView)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "print-current-view")
}

func TestRegisterReplacesHandler(t *testing.T) {
	d := NewDispatcher()

	var got string
	d.Register(SaveCurrentForm, func(ctx context.Context) error {
		got = "first"
		return nil
	})
	d.Register(SaveCurrentForm, func(ctx context.Context) error {
		got = "second"
		return nil
	})

	require.NoError(t, d.Trigger(context.Background(), SaveCurrentForm))
	require.Equal(t, "second", got)
}
