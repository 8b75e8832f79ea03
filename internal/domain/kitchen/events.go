package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingListGeneratedEvent is raised when a new open list replaces the
// previous one
type ShoppingListGeneratedEvent struct {
	ListID         uuid.UUID
	Owner          string
	MandatoryLines int
	OptionalLines  int
	FlagsConsumed  int
	GeneratedAt    time.Time
}

func (e ShoppingListGeneratedEvent) EventName() string {
	return "shopping_list.generated"
}

func (e ShoppingListGeneratedEvent) OccurredAt() time.Time {
	return e.GeneratedAt
}

// StockAdjustedEvent is raised when done-state transitions changed item
// quantities
type StockAdjustedEvent struct {
	Owner      string
	Source     string
	SourceID   uuid.UUID
	ItemIDs    []uuid.UUID
	Skipped    int
	AdjustedAt time.Time
}

func (e StockAdjustedEvent) EventName() string {
	return "stock.adjusted"
}

func (e StockAdjustedEvent) OccurredAt() time.Time {
	return e.AdjustedAt
}
