package kitchen

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeIngredient is the amount of one item needed for a single
// preparation of a recipe
type RecipeIngredient struct {
	ItemID uuid.UUID
	Amount decimal.Decimal
}

// Recipe is an ordered list of ingredients
type Recipe struct {
	ID          uuid.UUID
	Owner       string
	Name        string
	Ingredients []RecipeIngredient
	CreatedAt   time.Time
}

// NewRecipe validates and creates a recipe
func NewRecipe(owner, name string, ingredients []RecipeIngredient) (*Recipe, error) {
	r := &Recipe{
		ID:          uuid.New(),
		Owner:       owner,
		Name:        strings.TrimSpace(name),
		Ingredients: ingredients,
		CreatedAt:   time.Now(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the recipe invariants
func (r *Recipe) Validate() error {
	if r.Owner == "" {
		return ErrOwnerRequired
	}
	if err := validateName(r.Name); err != nil {
		return err
	}
	for _, ing := range r.Ingredients {
		if ing.ItemID == uuid.Nil {
			return ErrMissingItem
		}
		if ing.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

// ItemIDs returns the distinct item ids referenced by the recipe
func (r *Recipe) ItemIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Ingredients))
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if _, ok := seen[ing.ItemID]; ok {
			continue
		}
		seen[ing.ItemID] = struct{}{}
		ids = append(ids, ing.ItemID)
	}
	return ids
}

// RecipeIDSet is an insertion-ordered set of recipe ids
type RecipeIDSet []uuid.UUID

// Add inserts id unless already present
func (s RecipeIDSet) Add(id uuid.UUID) RecipeIDSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

// Contains reports whether id is in the set
func (s RecipeIDSet) Contains(id uuid.UUID) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (s RecipeIDSet) Clone() RecipeIDSet {
	if s == nil {
		return RecipeIDSet{}
	}
	out := make(RecipeIDSet, len(s))
	copy(out, s)
	return out
}
