package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// MustBuyFlag asks for an item on the next generated list regardless of
// recipe demand
type MustBuyFlag struct {
	ID        uuid.UUID
	Owner     string
	ItemID    uuid.UUID
	CreatedAt time.Time
}

// NewMustBuyFlag creates a flag for the item
func NewMustBuyFlag(owner string, itemID uuid.UUID) (*MustBuyFlag, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if itemID == uuid.Nil {
		return nil, ErrMissingItem
	}
	return &MustBuyFlag{
		ID:        uuid.New(),
		Owner:     owner,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}, nil
}
