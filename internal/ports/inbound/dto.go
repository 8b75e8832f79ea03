package inbound

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO represents a pantry item for external consumption
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IngredientDTO is a recipe ingredient with its item details
type IngredientDTO struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Unit     string          `json:"unit,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// RecipeDTO represents a recipe
type RecipeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Ingredients []IngredientDTO `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecipeRefDTO names a recipe contributing to a line
type RecipeRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// LineDTO is a shopping-list line joined with its item
type LineDTO struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ItemName    string          `json:"item_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Amount      decimal.Decimal `json:"amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsDone      bool            `json:"is_done"`
	Recipes     []RecipeRefDTO  `json:"recipes"`
}

// ShoppingListDTO is the read model of a shopping list
type ShoppingListDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
	IsDone    bool      `json:"is_done"`
	Mandatory []LineDTO `json:"mandatory"`
	Optional  []LineDTO `json:"optional"`
}

// GenerateListResult reports list generation. List is nil when there was
// nothing to buy.
type GenerateListResult struct {
	List           *ShoppingListDTO `json:"list"`
	Empty          bool             `json:"empty"`
	MissingRecipes []uuid.UUID      `json:"missing_recipes,omitempty"`
	UnknownItems   []uuid.UUID      `json:"unknown_items,omitempty"`
	FlagsPromoted  int              `json:"flags_promoted"`
	FlagsAdded     int              `json:"flags_added"`
}

// PlanEntryDTO is one scheduled recipe
type PlanEntryDTO struct {
	ID         uuid.UUID `json:"id"`
	RecipeID   uuid.UUID `json:"recipe_id"`
	RecipeName string    `json:"recipe_name,omitempty"`
	IsDone     bool      `json:"is_done"`
}

// PlanDTO is one planned day. Filler days for the upcoming view have a nil
// ID.
type PlanDTO struct {
	ID      uuid.UUID      `json:"id"`
	Date    string         `json:"date"`
	IsDone  bool           `json:"is_done"`
	Entries []PlanEntryDTO `json:"entries"`
}

// MustBuyDTO is a must-buy flag
type MustBuyDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of a listing
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
