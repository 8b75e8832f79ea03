package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// Reconcile nets demand against on-hand stock. Items short of stock become
// mandatory lines for the shortfall; covered items become optional lines
// for their full demand.
func Reconcile(owner string, d Demand, items map[uuid.UUID]*kitchen.Item, now time.Time) *kitchen.ShoppingList {
	onHand := snapshot(d.ItemIDs(), items)
	list := kitchen.NewShoppingList(owner, now)

	for _, itemID := range d.ItemIDs() {
		demand := d.Total(itemID)
		if !demand.IsPositive() {
			continue
		}

		have := onHand[itemID]
		line := &kitchen.ShoppingListLine{
			ItemID:      itemID,
			TotalAmount: demand,
			Recipes:     d.Recipes(itemID).Clone(),
		}

		if demand.GreaterThan(have) {
			line.Amount = demand.Sub(have)
			list.Mandatory = append(list.Mandatory, line)
		} else {
			line.Amount = demand
			list.Optional = append(list.Optional, line)
		}
	}

	return list
}

// snapshot reads each item's quantity exactly once. Negative stock counts
// as none.
func snapshot(ids []uuid.UUID, items map[uuid.UUID]*kitchen.Item) map[uuid.UUID]decimal.Decimal {
	onHand := make(map[uuid.UUID]decimal.Decimal, len(ids))
	for _, id := range ids {
		item, ok := items[id]
		if !ok || item.Quantity.IsNegative() {
			onHand[id] = decimal.Zero
			continue
		}
		onHand[id] = item.Quantity
	}
	return onHand
}
