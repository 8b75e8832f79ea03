// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KitchenService defines the pantry use cases driven by the HTTP layer
type KitchenService interface {
	// Shopping lists
	GenerateList(ctx context.Context, owner string) (*GenerateListResult, error)
	GetOpenList(ctx context.Context, owner string) (*ShoppingListDTO, error)
	GetList(ctx context.Context, owner string, listID uuid.UUID) (*ShoppingListDTO, error)
	GetClosedLists(ctx context.Context, owner string, page int) (*Page[ShoppingListDTO], error)
	UpdateList(ctx context.Context, cmd UpdateShoppingListCommand) (*ShoppingListDTO, error)
	DeleteList(ctx context.Context, owner string, listID uuid.UUID) error

	// Meal plans
	CreatePlan(ctx context.Context, cmd CreatePlanCommand) (*PlanDTO, error)
	UpdatePlan(ctx context.Context, cmd UpdatePlanCommand) (*PlanDTO, error)
	DeletePlan(ctx context.Context, owner string, planID uuid.UUID) error
	GetUpcomingPlans(ctx context.Context, owner string) ([]PlanDTO, error)
	GetClosedPlans(ctx context.Context, owner string, page int) (*Page[PlanDTO], error)

	// Catalog
	CreateItem(ctx context.Context, cmd CreateItemCommand) (*ItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdateItemCommand) (*ItemDTO, error)
	SearchItems(ctx context.Context, owner, query string) ([]ItemDTO, error)
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	GetRecipe(ctx context.Context, owner string, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, owner string, page int) (*Page[RecipeDTO], error)

	// Must-buy flags
	AddMustBuy(ctx context.Context, owner string, itemID uuid.UUID) (*MustBuyDTO, error)
	ListMustBuy(ctx context.Context, owner string) ([]MustBuyDTO, error)
}

// Command objects for operations

// LineInput is one submitted shopping-list line
type LineInput struct {
	ItemID      uuid.UUID
	Amount      decimal.Decimal
	TotalAmount decimal.Decimal
	IsDone      bool
	RecipeIDs   []uuid.UUID
}

// UpdateShoppingListCommand replaces the lines and state of a list
type UpdateShoppingListCommand struct {
	Owner     string
	ListID    uuid.UUID
	Name      string
	IsDone    bool
	Mandatory []LineInput
	Optional  []LineInput
}

// PlanEntryInput is one submitted plan entry. A zero ID marks a new entry.
type PlanEntryInput struct {
	ID       uuid.UUID
	RecipeID uuid.UUID
	IsDone   bool
}

// CreatePlanCommand schedules recipes for a day
type CreatePlanCommand struct {
	Owner   string
	Date    time.Time
	Entries []PlanEntryInput
}

// UpdatePlanCommand replaces the entries and state of a plan
type UpdatePlanCommand struct {
	Owner   string
	PlanID  uuid.UUID
	Date    time.Time
	IsDone  bool
	Entries []PlanEntryInput
}

// CreateItemCommand adds a pantry item
type CreateItemCommand struct {
	Owner    string
	Name     string
	Unit     string
	Quantity decimal.Decimal
}

// UpdateItemCommand edits an item directly, outside the ledger
type UpdateItemCommand struct {
	Owner    string
	ItemID   uuid.UUID
	Name     string
	Unit     string
	Quantity decimal.Decimal
}

// IngredientInput is one submitted recipe ingredient
type IngredientInput struct {
	ItemID uuid.UUID
	Amount decimal.Decimal
}

// CreateRecipeCommand adds a recipe
type CreateRecipeCommand struct {
	Owner       string
	Name        string
	Ingredients []IngredientInput
}
