package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/shopspring/decimal"
)

// Request bodies

type lineRequest struct {
	ItemID      uuid.UUID       `json:"item_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"gte=0"`
	IsDone      bool            `json:"is_done"`
	Recipes     []uuid.UUID     `json:"recipes"`
}

type updateListRequest struct {
	Name      string        `json:"name" validate:"max=200,plain_text"`
	IsDone    bool          `json:"is_done"`
	Mandatory []lineRequest `json:"mandatory" validate:"dive"`
	Optional  []lineRequest `json:"optional" validate:"dive"`
}

type planEntryRequest struct {
	ID       uuid.UUID `json:"id"`
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
	IsDone   bool      `json:"is_done"`
}

type createPlanRequest struct {
	Date    string             `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []planEntryRequest `json:"entries" validate:"dive"`
}

type updatePlanRequest struct {
	Date    string             `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IsDone  bool               `json:"is_done"`
	Entries []planEntryRequest `json:"entries" validate:"dive"`
}

type itemRequest struct {
	Name     string          `json:"name" validate:"required,max=200,plain_text"`
	Unit     string          `json:"unit" validate:"max=32,plain_text"`
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`
}

type ingredientRequest struct {
	ItemID uuid.UUID       `json:"item_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

type createRecipeRequest struct {
	Name        string              `json:"name" validate:"required,max=200,plain_text"`
	Ingredients []ingredientRequest `json:"ingredients" validate:"dive"`
}

type mustBuyRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

// Request to command mapping

func (req updateListRequest) command(owner string, listID uuid.UUID) inbound.UpdateShoppingListCommand {
	return inbound.UpdateShoppingListCommand{
		Owner:     owner,
		ListID:    listID,
		Name:      req.Name,
		IsDone:    req.IsDone,
		Mandatory: lineInputs(req.Mandatory),
		Optional:  lineInputs(req.Optional),
	}
}

func lineInputs(lines []lineRequest) []inbound.LineInput {
	out := make([]inbound.LineInput, len(lines))
	for i, l := range lines {
		out[i] = inbound.LineInput{
			ItemID:      l.ItemID,
			Amount:      l.Amount,
			TotalAmount: l.TotalAmount,
			IsDone:      l.IsDone,
			RecipeIDs:   l.Recipes,
		}
	}
	return out
}

func entryInputs(entries []planEntryRequest) []inbound.PlanEntryInput {
	out := make([]inbound.PlanEntryInput, len(entries))
	for i, e := range entries {
		out[i] = inbound.PlanEntryInput{ID: e.ID, RecipeID: e.RecipeID, IsDone: e.IsDone}
	}
	return out
}

// parseDay reads a validated plan date; an empty string yields the zero time
func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	day, err := time.Parse(kitchen.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return day
}
