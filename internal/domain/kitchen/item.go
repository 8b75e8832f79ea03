// Package kitchen holds the pantry entities: items, recipes, plans,
// shopping lists and must-buy flags.
package kitchen

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxNameLength = 200

// Item is a pantry item with an on-hand quantity
type Item struct {
	ID        uuid.UUID
	Owner     string
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UpdatedAt time.Time
}

// NewItem validates and creates an item
func NewItem(owner, name, unit string, quantity decimal.Decimal) (*Item, error) {
	item := &Item{
		ID:        uuid.New(),
		Owner:     owner,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		Unit:      strings.TrimSpace(unit),
		UpdatedAt: time.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the invariants of a persisted item
func (i *Item) Validate() error {
	if i.Owner == "" {
		return ErrOwnerRequired
	}
	if err := validateName(i.Name); err != nil {
		return err
	}
	if i.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	return nil
}

// Consume decrements the quantity, clamping at zero
func (i *Item) Consume(amount decimal.Decimal) {
	i.Quantity = i.Quantity.Sub(amount)
	if i.Quantity.IsNegative() {
		i.Quantity = decimal.Zero
	}
	i.UpdatedAt = time.Now()
}

// Restore increments the quantity
func (i *Item) Restore(amount decimal.Decimal) {
	i.Quantity = i.Quantity.Add(amount)
	i.UpdatedAt = time.Now()
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}
