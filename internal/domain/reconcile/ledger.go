package reconcile

import (
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// Direction says whether a delta takes stock out or puts it back
type Direction int

const (
	// Consume decrements stock, clamping at zero
	Consume Direction = iota + 1
	// Restore increments stock
	Restore
)

func (d Direction) String() string {
	switch d {
	case Consume:
		return "consume"
	case Restore:
		return "restore"
	default:
		return "unknown"
	}
}

// QuantityDelta is one stock adjustment produced by a done-state change
type QuantityDelta struct {
	ItemID    uuid.UUID
	Amount    decimal.Decimal
	Direction Direction
}

// LineTransition returns the stock change for a shopping-list line moving
// from prev to next. A nil prev is treated as pending. Marking done
// consumes the submitted amount; undoing restores the amount that was
// stored with the line.
func LineTransition(prev, next *kitchen.ShoppingListLine) []QuantityDelta {
	if next == nil {
		return nil
	}

	prevDone := prev != nil && prev.IsDone
	dir, changed := transition(prevDone, next.IsDone)
	if !changed {
		return nil
	}

	amount := next.Amount
	if dir == Restore && prev != nil {
		amount = prev.Amount
	}
	if !amount.IsPositive() {
		return nil
	}

	return []QuantityDelta{{ItemID: next.ItemID, Amount: amount, Direction: dir}}
}

// PlanTransition returns one delta per recipe ingredient when a plan entry
// changes done-state. It returns nil without a recipe.
func PlanTransition(prev, next *kitchen.PlanEntry, recipe *kitchen.Recipe) []QuantityDelta {
	if next == nil || recipe == nil {
		return nil
	}

	prevDone := prev != nil && prev.IsDone
	dir, changed := transition(prevDone, next.IsDone)
	if !changed {
		return nil
	}

	deltas := make([]QuantityDelta, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if !ing.Amount.IsPositive() {
			continue
		}
		deltas = append(deltas, QuantityDelta{ItemID: ing.ItemID, Amount: ing.Amount, Direction: dir})
	}
	return deltas
}

// ListTransitions diffs every line of next against the line for the same
// item in prev, across both partitions. Lines removed from the list do not
// move stock.
func ListTransitions(prev, next *kitchen.ShoppingList) []QuantityDelta {
	if next == nil {
		return nil
	}

	var deltas []QuantityDelta
	for _, line := range next.Lines() {
		var before *kitchen.ShoppingListLine
		if prev != nil {
			before, _ = prev.Line(line.ItemID)
		}
		deltas = append(deltas, LineTransition(before, line)...)
	}
	return deltas
}

// PlanDeltas is the outcome of diffing two versions of a plan
type PlanDeltas struct {
	Deltas []QuantityDelta
	// MissingRecipes lists recipes of transitioning entries that could not
	// be resolved; those entries moved no stock.
	MissingRecipes []uuid.UUID
}

// PlanTransitions diffs the entries of next against prev, matching entries
// by id. Entries not present in prev are treated as previously pending.
func PlanTransitions(prev, next *kitchen.Plan, recipes map[uuid.UUID]*kitchen.Recipe) PlanDeltas {
	var out PlanDeltas
	if next == nil {
		return out
	}

	for i := range next.Entries {
		entry := &next.Entries[i]

		var before *kitchen.PlanEntry
		if prev != nil {
			if e, ok := prev.Entry(entry.ID); ok {
				before = &e
			}
		}

		prevDone := before != nil && before.IsDone
		if prevDone == entry.IsDone {
			continue
		}

		recipe, ok := recipes[entry.RecipeID]
		if !ok {
			out.MissingRecipes = appendUnique(out.MissingRecipes, entry.RecipeID)
			continue
		}
		out.Deltas = append(out.Deltas, PlanTransition(before, entry, recipe)...)
	}

	return out
}

// LedgerResult reports the items touched by ApplyDeltas
type LedgerResult struct {
	// Updated holds each adjusted item once, in order of first adjustment.
	// It is the batch to persist.
	Updated []*kitchen.Item
	// Skipped lists item ids that were not in the item map
	Skipped []uuid.UUID
	Applied int
}

// ApplyDeltas applies deltas in order to the supplied items, mutating them
// in place. A delta for an unknown item is skipped and the rest proceed.
func ApplyDeltas(items map[uuid.UUID]*kitchen.Item, deltas []QuantityDelta) LedgerResult {
	var result LedgerResult
	touched := make(map[uuid.UUID]struct{}, len(deltas))

	for _, delta := range deltas {
		item, ok := items[delta.ItemID]
		if !ok {
			result.Skipped = appendUnique(result.Skipped, delta.ItemID)
			continue
		}

		switch delta.Direction {
		case Consume:
			item.Consume(delta.Amount)
		case Restore:
			item.Restore(delta.Amount)
		default:
			continue
		}
		result.Applied++

		if _, seen := touched[item.ID]; !seen {
			touched[item.ID] = struct{}{}
			result.Updated = append(result.Updated, item)
		}
	}

	return result
}

// DeltaItemIDs returns the distinct item ids referenced by deltas
func DeltaItemIDs(deltas []QuantityDelta) []uuid.UUID {
	var ids []uuid.UUID
	for _, d := range deltas {
		ids = appendUnique(ids, d.ItemID)
	}
	return ids
}

func transition(prevDone, nextDone bool) (Direction, bool) {
	switch {
	case !prevDone && nextDone:
		return Consume, true
	case prevDone && !nextDone:
		return Restore, true
	default:
		return 0, false
	}
}
