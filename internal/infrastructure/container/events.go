package container

import (
	"context"
	"sync"

	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"go.uber.org/zap"
)

// EventDispatcher delivers domain events to in-process handlers
type EventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	log      *zap.Logger
}

// NewEventDispatcher creates a new event dispatcher
func NewEventDispatcher(log *zap.Logger) *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[string][]shared.EventHandler),
		log:      log.Named("events"),
	}
}

// Dispatch runs every handler registered for the event. A failing handler
// is logged and does not stop the others.
func (d *EventDispatcher) Dispatch(ctx context.Context, event shared.DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventName()]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.log.Debug("No handlers registered for event", zap.String("event", event.EventName()))
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.log.Error("Failed to handle event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Register registers an event handler
func (d *EventDispatcher) Register(eventName string, handler shared.EventHandler) {
	d.mu.Lock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
	d.mu.Unlock()
	d.log.Debug("Registered event handler", zap.String("event", eventName))
}

// RegisterEventHandlers attaches the audit log handlers
func RegisterEventHandlers(d shared.EventDispatcher, log *zap.Logger) {
	audit := log.Named("audit")

	d.Register(kitchen.ShoppingListGeneratedEvent{}.EventName(), func(ctx context.Context, event shared.DomainEvent) error {
		e, ok := event.(kitchen.ShoppingListGeneratedEvent)
		if !ok {
			return nil
		}
		audit.Info("Shopping list generated",
			zap.String("owner", e.Owner),
			zap.String("list_id", e.ListID.String()),
			zap.Int("mandatory", e.MandatoryLines),
			zap.Int("optional", e.OptionalLines),
			zap.Int("flags_consumed", e.FlagsConsumed),
		)
		return nil
	})

	d.Register(kitchen.StockAdjustedEvent{}.EventName(), func(ctx context.Context, event shared.DomainEvent) error {
		e, ok := event.(kitchen.StockAdjustedEvent)
		if !ok {
			return nil
		}
		audit.Info("Stock adjusted",
			zap.String("owner", e.Owner),
			zap.String("source", e.Source),
			zap.String("source_id", e.SourceID.String()),
			zap.Int("items", len(e.ItemIDs)),
			zap.Int("skipped", e.Skipped),
		)
		return nil
	})
}
