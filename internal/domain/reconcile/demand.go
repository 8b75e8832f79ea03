// Package reconcile turns scheduled recipes, pantry stock and must-buy
// flags into a shopping list, and keeps stock quantities in step with
// done-state changes on plan entries and shopping-list lines.
//
// Every function here is a synchronous pass over data the caller already
// loaded. Nothing is persisted and nothing is cached between calls.
package reconcile

import (
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// Demand is the ingredient demand per item across recipe occurrences
type Demand struct {
	order   []uuid.UUID
	totals  map[uuid.UUID]decimal.Decimal
	recipes map[uuid.UUID]kitchen.RecipeIDSet

	// Unknown lists item ids referenced by a recipe but missing from the
	// item map, in order of first reference.
	Unknown []uuid.UUID
}

// Aggregate sums ingredient amounts per item over every occurrence. A
// recipe scheduled twice contributes twice to the total but only once to
// the item's recipe set.
func Aggregate(occurrences []*kitchen.Recipe, items map[uuid.UUID]*kitchen.Item) Demand {
	d := Demand{
		totals:  make(map[uuid.UUID]decimal.Decimal),
		recipes: make(map[uuid.UUID]kitchen.RecipeIDSet),
	}

	for _, recipe := range occurrences {
		if recipe == nil {
			continue
		}
		for _, ing := range recipe.Ingredients {
			if _, known := items[ing.ItemID]; !known {
				d.Unknown = appendUnique(d.Unknown, ing.ItemID)
				continue
			}
			total, seen := d.totals[ing.ItemID]
			if !seen {
				d.order = append(d.order, ing.ItemID)
			}
			d.totals[ing.ItemID] = total.Add(ing.Amount)
			d.recipes[ing.ItemID] = d.recipes[ing.ItemID].Add(recipe.ID)
		}
	}

	return d
}

// ItemIDs returns the items with demand, in order of first reference
func (d Demand) ItemIDs() []uuid.UUID {
	return d.order
}

// Total returns the summed demand for an item
func (d Demand) Total(itemID uuid.UUID) decimal.Decimal {
	return d.totals[itemID]
}

// Recipes returns the distinct recipes contributing to an item
func (d Demand) Recipes(itemID uuid.UUID) kitchen.RecipeIDSet {
	return d.recipes[itemID]
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
