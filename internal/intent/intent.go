// Package intent maps app-wide user intents (keyboard shortcuts, menu
// actions) to handlers. The UI shell registers handlers at startup and
// triggers intents by name.
package intent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Intent string

const (
	QuickNewEvent    Intent = "quick-new-event"
	SaveCurrentForm  Intent = "save-current-form"
	PrintCurrentView Intent = "print-current-view"
	ManualBackup     Intent = "manual-backup"
)

var ErrUnknownIntent = errors.New("unknown intent")

type Handler func(ctx context.Context) error

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Intent]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Intent]Handler),
	}
}

// Register binds a handler to an intent, replacing any previous binding.
func (d *Dispatcher) Register(intent Intent, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[intent] = handler
}

// Trigger runs the handler bound to the intent.
func (d *Dispatcher) Trigger(ctx context.Context, intent Intent) error {
	d.mu.RLock()
	handler, ok := d.handlers[intent]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}

	zap.L().Debug("intent triggered", zap.String("intent", string(intent)))

	if err := handler(ctx); err != nil {
		return fmt.Errorf("intent %q -> %w", intent, err)
	}

	return nil
}
