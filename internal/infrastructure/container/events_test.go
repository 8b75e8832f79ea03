package container

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventDispatcher_DeliversToAllHandlers(t *testing.T) {
	d := NewEventDispatcher(zap.NewNop())
	event := kitchen.StockAdjustedEvent{Owner: "o", AdjustedAt: time.Now()}

	var calls []string
	d.Register(event.EventName(), func(ctx context.Context, e shared.DomainEvent) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Register(event.EventName(), func(ctx context.Context, e shared.DomainEvent) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), event))
	assert.Equal(t, []string{"first", "second"}, calls, "a failing handler does not stop the rest")

	require.NoError(t, d.Dispatch(context.Background(), kitchen.ShoppingListGeneratedEvent{}))
	assert.Len(t, calls, 2)
}

func TestRegisterEventHandlers_WritesAuditLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	d := NewEventDispatcher(log)
	RegisterEventHandlers(d, log)

	listID := uuid.New()
	require.NoError(t, d.Dispatch(context.Background(), kitchen.ShoppingListGeneratedEvent{
		ListID:         listID,
		Owner:          "owner-1",
		MandatoryLines: 2,
		OptionalLines:  1,
		GeneratedAt:    time.Now(),
	}))
	require.NoError(t, d.Dispatch(context.Background(), kitchen.StockAdjustedEvent{
		Owner:   "owner-1",
		Source:  "shopping_list",
		ItemIDs: []uuid.UUID{uuid.New(), uuid.New()},
		Skipped: 1,
	}))

	generated := logs.FilterMessage("Shopping list generated").All()
	require.Len(t, generated, 1)
	assert.Equal(t, listID.String(), generated[0].ContextMap()["list_id"])
	assert.Equal(t, int64(2), generated[0].ContextMap()["mandatory"])

	adjusted := logs.FilterMessage("Stock adjusted").All()
	require.Len(t, adjusted, 1)
	assert.Equal(t, int64(2), adjusted[0].ContextMap()["items"])
	assert.Equal(t, "audit", adjusted[0].LoggerName)
}
