package kitchen

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListNameLayout renders the default list name, e.g. "Fri, Mar-01 2024"
const ListNameLayout = "Mon, Jan-02 2006"

// ShoppingListLine is one item to buy. Amount is what to buy, TotalAmount
// the demand behind the line.
type ShoppingListLine struct {
	ItemID      uuid.UUID
	Amount      decimal.Decimal
	TotalAmount decimal.Decimal
	IsDone      bool
	Recipes     RecipeIDSet
}

// Validate checks amount invariants of a single line
func (l *ShoppingListLine) Validate() error {
	if l.ItemID == uuid.Nil {
		return ErrMissingItem
	}
	if l.Amount.IsNegative() || l.TotalAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if l.Amount.GreaterThan(l.TotalAmount) {
		return ErrAmountExceedsTotal
	}
	return nil
}

// ShoppingList is partitioned into mandatory and optional lines. An item
// id appears in at most one partition.
type ShoppingList struct {
	ID        uuid.UUID
	Owner     string
	Name      string
	CreatedOn time.Time
	IsDone    bool
	Mandatory []*ShoppingListLine
	Optional  []*ShoppingListLine
}

// NewShoppingList creates an empty open list named after its creation day
func NewShoppingList(owner string, now time.Time) *ShoppingList {
	return &ShoppingList{
		ID:        uuid.New(),
		Owner:     owner,
		Name:      now.Format(ListNameLayout),
		CreatedOn: now,
		Mandatory: []*ShoppingListLine{},
		Optional:  []*ShoppingListLine{},
	}
}

// Validate checks the partition and amount invariants
func (s *ShoppingList) Validate() error {
	if s.Owner == "" {
		return ErrOwnerRequired
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	seen := make(map[uuid.UUID]struct{}, len(s.Mandatory)+len(s.Optional))
	for _, l := range s.Lines() {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l.ItemID]; dup {
			return ErrDuplicateLine
		}
		seen[l.ItemID] = struct{}{}
	}
	return nil
}

// Lines returns mandatory lines followed by optional lines
func (s *ShoppingList) Lines() []*ShoppingListLine {
	lines := make([]*ShoppingListLine, 0, len(s.Mandatory)+len(s.Optional))
	lines = append(lines, s.Mandatory...)
	return append(lines, s.Optional...)
}

// Line finds the line for an item in either partition
func (s *ShoppingList) Line(itemID uuid.UUID) (*ShoppingListLine, bool) {
	for _, l := range s.Lines() {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return nil, false
}

// IsEmpty reports whether the list has no lines at all
func (s *ShoppingList) IsEmpty() bool {
	return len(s.Mandatory) == 0 && len(s.Optional) == 0
}

// ItemIDs returns the item ids of all lines
func (s *ShoppingList) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Mandatory)+len(s.Optional))
	for _, l := range s.Lines() {
		ids = append(ids, l.ItemID)
	}
	return ids
}

// RecipeIDs returns the distinct recipe ids referenced by any line
func (s *ShoppingList) RecipeIDs() []uuid.UUID {
	var set RecipeIDSet
	for _, l := range s.Lines() {
		for _, id := range l.Recipes {
			set = set.Add(id)
		}
	}
	return set
}

// MandatoryIndex returns the position of the item in Mandatory, or -1
func (s *ShoppingList) MandatoryIndex(itemID uuid.UUID) int {
	return indexOf(s.Mandatory, itemID)
}

// OptionalIndex returns the position of the item in Optional, or -1
func (s *ShoppingList) OptionalIndex(itemID uuid.UUID) int {
	return indexOf(s.Optional, itemID)
}

// Promote moves the optional line at index i to the end of Mandatory
func (s *ShoppingList) Promote(i int) {
	line := s.Optional[i]
	s.Optional = append(s.Optional[:i], s.Optional[i+1:]...)
	s.Mandatory = append(s.Mandatory, line)
}

func indexOf(lines []*ShoppingListLine, itemID uuid.UUID) int {
	for i, l := range lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
