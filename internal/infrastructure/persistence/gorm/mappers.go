// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
)

// ItemToModel converts a domain item to a GORM model
func ItemToModel(i *kitchen.Item) *ItemModel {
	return &ItemModel{
		ID:        i.ID,
		Owner:     i.Owner,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		UpdatedAt: i.UpdatedAt,
	}
}

// ModelToItem converts a GORM model to a domain item
func ModelToItem(m *ItemModel) *kitchen.Item {
	return &kitchen.Item{
		ID:        m.ID,
		Owner:     m.Owner,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		UpdatedAt: m.UpdatedAt,
	}
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *kitchen.Recipe) *RecipeModel {
	ingredients := make(JSONList[IngredientDoc], len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = IngredientDoc{ItemID: ing.ItemID, Amount: ing.Amount}
	}
	return &RecipeModel{
		ID:          r.ID,
		Owner:       r.Owner,
		Name:        r.Name,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *kitchen.Recipe {
	ingredients := make([]kitchen.RecipeIngredient, len(m.Ingredients))
	for i, doc := range m.Ingredients {
		ingredients[i] = kitchen.RecipeIngredient{ItemID: doc.ItemID, Amount: doc.Amount}
	}
	return &kitchen.Recipe{
		ID:          m.ID,
		Owner:       m.Owner,
		Name:        m.Name,
		Ingredients: ingredients,
		CreatedAt:   m.CreatedAt,
	}
}

// PlanToModel converts a domain plan to a GORM model
func PlanToModel(p *kitchen.Plan) *PlanModel {
	entries := make(JSONList[PlanEntryDoc], len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = PlanEntryDoc{ID: e.ID, RecipeID: e.RecipeID, IsDone: e.IsDone}
	}
	return &PlanModel{
		ID:      p.ID,
		Owner:   p.Owner,
		Date:    kitchen.TruncateDay(p.Date),
		IsDone:  p.IsDone,
		Entries: entries,
	}
}

// ModelToPlan converts a GORM model to a domain plan
func ModelToPlan(m *PlanModel) *kitchen.Plan {
	entries := make([]kitchen.PlanEntry, len(m.Entries))
	for i, doc := range m.Entries {
		entries[i] = kitchen.PlanEntry{ID: doc.ID, RecipeID: doc.RecipeID, IsDone: doc.IsDone}
	}
	return &kitchen.Plan{
		ID:      m.ID,
		Owner:   m.Owner,
		Date:    kitchen.TruncateDay(m.Date),
		IsDone:  m.IsDone,
		Entries: entries,
	}
}

// ShoppingListToModel converts a domain shopping list to a GORM model
func ShoppingListToModel(s *kitchen.ShoppingList) *ShoppingListModel {
	return &ShoppingListModel{
		ID:        s.ID,
		Owner:     s.Owner,
		Name:      s.Name,
		CreatedOn: s.CreatedOn,
		IsDone:    s.IsDone,
		Mandatory: linesToDocs(s.Mandatory),
		Optional:  linesToDocs(s.Optional),
	}
}

// ModelToShoppingList converts a GORM model to a domain shopping list
func ModelToShoppingList(m *ShoppingListModel) *kitchen.ShoppingList {
	return &kitchen.ShoppingList{
		ID:        m.ID,
		Owner:     m.Owner,
		Name:      m.Name,
		CreatedOn: m.CreatedOn,
		IsDone:    m.IsDone,
		Mandatory: docsToLines(m.Mandatory),
		Optional:  docsToLines(m.Optional),
	}
}

// MustBuyFlagToModel converts a domain flag to a GORM model
func MustBuyFlagToModel(f *kitchen.MustBuyFlag) *MustBuyFlagModel {
	return &MustBuyFlagModel{
		ID:        f.ID,
		Owner:     f.Owner,
		ItemID:    f.ItemID,
		CreatedAt: f.CreatedAt,
	}
}

// ModelToMustBuyFlag converts a GORM model to a domain flag
func ModelToMustBuyFlag(m *MustBuyFlagModel) kitchen.MustBuyFlag {
	return kitchen.MustBuyFlag{
		ID:        m.ID,
		Owner:     m.Owner,
		ItemID:    m.ItemID,
		CreatedAt: m.CreatedAt,
	}
}

func linesToDocs(lines []*kitchen.ShoppingListLine) JSONList[LineDoc] {
	docs := make(JSONList[LineDoc], len(lines))
	for i, l := range lines {
		docs[i] = LineDoc{
			ItemID:      l.ItemID,
			Amount:      l.Amount,
			TotalAmount: l.TotalAmount,
			IsDone:      l.IsDone,
			Recipes:     []uuid.UUID(l.Recipes.Clone()),
		}
	}
	return docs
}

func docsToLines(docs JSONList[LineDoc]) []*kitchen.ShoppingListLine {
	lines := make([]*kitchen.ShoppingListLine, len(docs))
	for i, d := range docs {
		lines[i] = &kitchen.ShoppingListLine{
			ItemID:      d.ItemID,
			Amount:      d.Amount,
			TotalAmount: d.TotalAmount,
			IsDone:      d.IsDone,
			Recipes:     kitchen.RecipeIDSet(d.Recipes).Clone(),
		}
	}
	return lines
}
