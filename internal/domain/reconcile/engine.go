package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
)

// Engine is the entry point used by the application layer
type Engine struct {
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used to stamp generated lists
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateResult is the outcome of list generation. List is nil when
// there was nothing to buy.
type GenerateResult struct {
	List *kitchen.ShoppingList

	Occurrences    int
	MissingRecipes []uuid.UUID
	UnknownItems   []uuid.UUID
	Merge          MergeReport
}

// Empty reports whether generation produced no list
func (r GenerateResult) Empty() bool {
	return r.List == nil
}

// Skipped is the number of references that could not be resolved
func (r GenerateResult) Skipped() int {
	return len(r.MissingRecipes) + len(r.UnknownItems)
}

// GenerateList builds a shopping list from the pending plan entries. Each
// entry is one occurrence of its recipe. Entries already cooked are not
// demand any more.
func (e *Engine) GenerateList(
	owner string,
	entries []kitchen.PlanEntry,
	recipes []*kitchen.Recipe,
	items map[uuid.UUID]*kitchen.Item,
	flags []kitchen.MustBuyFlag,
) GenerateResult {
	var result GenerateResult

	byID := make(map[uuid.UUID]*kitchen.Recipe, len(recipes))
	for _, r := range recipes {
		if r != nil {
			byID[r.ID] = r
		}
	}

	occurrences := make([]*kitchen.Recipe, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDone {
			continue
		}
		recipe, ok := byID[entry.RecipeID]
		if !ok {
			result.MissingRecipes = appendUnique(result.MissingRecipes, entry.RecipeID)
			continue
		}
		occurrences = append(occurrences, recipe)
	}
	result.Occurrences = len(occurrences)

	if len(occurrences) == 0 || len(items) == 0 {
		return result
	}

	demand := Aggregate(occurrences, items)
	result.UnknownItems = demand.Unknown

	list := Reconcile(owner, demand, items, e.now())

	known := make([]kitchen.MustBuyFlag, 0, len(flags))
	for _, flag := range flags {
		if _, ok := items[flag.ItemID]; !ok {
			result.UnknownItems = appendUnique(result.UnknownItems, flag.ItemID)
			continue
		}
		known = append(known, flag)
	}
	result.Merge = MergeMustBuy(list, known)

	if !list.IsEmpty() {
		result.List = list
	}
	return result
}

// ApplyLineTransition returns the stock deltas for a shopping-list line
// moving from prev to next
func (e *Engine) ApplyLineTransition(prev, next *kitchen.ShoppingListLine) []QuantityDelta {
	return LineTransition(prev, next)
}

// ApplyPlanTransition returns the stock deltas for a plan entry moving from
// prev to next
func (e *Engine) ApplyPlanTransition(prev, next *kitchen.PlanEntry, recipe *kitchen.Recipe) []QuantityDelta {
	return PlanTransition(prev, next, recipe)
}
