// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// KitchenFactory builds pantry entities with fake names
type KitchenFactory struct {
	faker *gofakeit.Faker
}

// NewKitchenFactory creates a new factory with seeded faker
func NewKitchenFactory(seed int64) *KitchenFactory {
	return &KitchenFactory{
		faker: gofakeit.New(seed),
	}
}

// Owner returns a random owner token
func (f *KitchenFactory) Owner() string {
	return f.faker.UUID()
}

// Item creates an item with the given on-hand quantity, e.g. "2.5"
func (f *KitchenFactory) Item(owner, quantity string) *kitchen.Item {
	return &kitchen.Item{
		ID:        uuid.New(),
		Owner:     owner,
		Name:      f.faker.Vegetable(),
		Quantity:  Dec(quantity),
		Unit:      f.faker.RandomString([]string{"g", "ml", "pcs", "kg"}),
		UpdatedAt: time.Now(),
	}
}

// Recipe creates a recipe from ingredients
func (f *KitchenFactory) Recipe(owner string, ingredients ...kitchen.RecipeIngredient) *kitchen.Recipe {
	return &kitchen.Recipe{
		ID:          uuid.New(),
		Owner:       owner,
		Name:        f.faker.Dessert(),
		Ingredients: ingredients,
		CreatedAt:   time.Now(),
	}
}

// Ingredient references an item with an amount, e.g. "4"
func Ingredient(item *kitchen.Item, amount string) kitchen.RecipeIngredient {
	return kitchen.RecipeIngredient{ItemID: item.ID, Amount: Dec(amount)}
}

// Entry schedules a recipe
func Entry(recipe *kitchen.Recipe, done bool) kitchen.PlanEntry {
	return kitchen.PlanEntry{ID: uuid.New(), RecipeID: recipe.ID, IsDone: done}
}

// Flag creates a must-buy flag for an item
func Flag(item *kitchen.Item) kitchen.MustBuyFlag {
	return kitchen.MustBuyFlag{ID: uuid.New(), Owner: item.Owner, ItemID: item.ID, CreatedAt: time.Now()}
}

// Line builds a shopping-list line
func Line(item *kitchen.Item, amount, total string, done bool) *kitchen.ShoppingListLine {
	return &kitchen.ShoppingListLine{
		ItemID:      item.ID,
		Amount:      Dec(amount),
		TotalAmount: Dec(total),
		IsDone:      done,
		Recipes:     kitchen.RecipeIDSet{},
	}
}

// Plan creates a plan for the day with the given entries
func (f *KitchenFactory) Plan(owner string, date time.Time, entries ...kitchen.PlanEntry) *kitchen.Plan {
	return &kitchen.Plan{
		ID:      uuid.New(),
		Owner:   owner,
		Date:    kitchen.TruncateDay(date),
		Entries: entries,
	}
}

// Items indexes items by id
func Items(items ...*kitchen.Item) map[uuid.UUID]*kitchen.Item {
	m := make(map[uuid.UUID]*kitchen.Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

// Dec parses a decimal literal and panics on bad input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
