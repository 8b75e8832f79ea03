package kitchen

import (
	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/shopspring/decimal"
)

func toItemDTO(item *kitchen.Item) inbound.ItemDTO {
	return inbound.ItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		UpdatedAt: item.UpdatedAt,
	}
}

func toRecipeDTO(recipe *kitchen.Recipe, items map[uuid.UUID]*kitchen.Item) inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientDTO, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = inbound.IngredientDTO{ItemID: ing.ItemID, Amount: ing.Amount}
		if item, ok := items[ing.ItemID]; ok {
			ingredients[i].ItemName = item.Name
			ingredients[i].Unit = item.Unit
		}
	}
	return inbound.RecipeDTO{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Ingredients: ingredients,
		CreatedAt:   recipe.CreatedAt,
	}
}

func toListDTO(list *kitchen.ShoppingList, items map[uuid.UUID]*kitchen.Item, recipes map[uuid.UUID]*kitchen.Recipe) *inbound.ShoppingListDTO {
	return &inbound.ShoppingListDTO{
		ID:        list.ID,
		Name:      list.Name,
		CreatedOn: list.CreatedOn,
		IsDone:    list.IsDone,
		Mandatory: toLineDTOs(list.Mandatory, items, recipes),
		Optional:  toLineDTOs(list.Optional, items, recipes),
	}
}

func toLineDTOs(lines []*kitchen.ShoppingListLine, items map[uuid.UUID]*kitchen.Item, recipes map[uuid.UUID]*kitchen.Recipe) []inbound.LineDTO {
	out := make([]inbound.LineDTO, len(lines))
	for i, line := range lines {
		dto := inbound.LineDTO{
			ItemID:      line.ItemID,
			OnHand:      decimal.Zero,
			Amount:      line.Amount,
			TotalAmount: line.TotalAmount,
			IsDone:      line.IsDone,
			Recipes:     make([]inbound.RecipeRefDTO, len(line.Recipes)),
		}
		if item, ok := items[line.ItemID]; ok {
			dto.ItemName = item.Name
			dto.Unit = item.Unit
			dto.OnHand = item.Quantity
		}
		for j, id := range line.Recipes {
			dto.Recipes[j] = inbound.RecipeRefDTO{ID: id}
			if r, ok := recipes[id]; ok {
				dto.Recipes[j].Name = r.Name
			}
		}
		out[i] = dto
	}
	return out
}

func toPlanDTO(plan *kitchen.Plan, recipes map[uuid.UUID]*kitchen.Recipe) inbound.PlanDTO {
	entries := make([]inbound.PlanEntryDTO, len(plan.Entries))
	for i, e := range plan.Entries {
		entries[i] = inbound.PlanEntryDTO{ID: e.ID, RecipeID: e.RecipeID, IsDone: e.IsDone}
		if r, ok := recipes[e.RecipeID]; ok {
			entries[i].RecipeName = r.Name
		}
	}
	return inbound.PlanDTO{
		ID:      plan.ID,
		Date:    plan.DateLabel(),
		IsDone:  plan.IsDone,
		Entries: entries,
	}
}

func toMustBuyDTO(flag kitchen.MustBuyFlag, items map[uuid.UUID]*kitchen.Item) inbound.MustBuyDTO {
	dto := inbound.MustBuyDTO{
		ID:        flag.ID,
		ItemID:    flag.ItemID,
		CreatedAt: flag.CreatedAt,
	}
	if item, ok := items[flag.ItemID]; ok {
		dto.ItemName = item.Name
	}
	return dto
}

// linesFromInput builds list lines, collapsing repeated recipe ids
func linesFromInput(inputs []inbound.LineInput) []*kitchen.ShoppingListLine {
	lines := make([]*kitchen.ShoppingListLine, len(inputs))
	for i, in := range inputs {
		recipes := kitchen.RecipeIDSet{}
		for _, id := range in.RecipeIDs {
			recipes = recipes.Add(id)
		}
		lines[i] = &kitchen.ShoppingListLine{
			ItemID:      in.ItemID,
			Amount:      in.Amount,
			TotalAmount: in.TotalAmount,
			IsDone:      in.IsDone,
			Recipes:     recipes,
		}
	}
	return lines
}

func entriesFromInput(inputs []inbound.PlanEntryInput) []kitchen.PlanEntry {
	entries := make([]kitchen.PlanEntry, len(inputs))
	for i, in := range inputs {
		entries[i] = kitchen.PlanEntry{ID: in.ID, RecipeID: in.RecipeID, IsDone: in.IsDone}
	}
	return entries
}

func planRecipeIDs(plans ...*kitchen.Plan) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, p := range plans {
		for _, e := range p.Entries {
			if _, ok := seen[e.RecipeID]; ok {
				continue
			}
			seen[e.RecipeID] = struct{}{}
			ids = append(ids, e.RecipeID)
		}
	}
	return ids
}
