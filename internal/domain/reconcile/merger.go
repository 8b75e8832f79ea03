package reconcile

import (
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// placeholderAmount is bought for a flagged item without recipe demand
var placeholderAmount = decimal.NewFromInt(1)

// MergeReport counts what each flag did to the list
type MergeReport struct {
	Promoted         int
	Added            int
	AlreadyMandatory int
}

// MergeMustBuy folds flags into the list in order. An optional line is
// promoted unchanged, an existing mandatory line is left alone, and any
// other item gets a one-unit mandatory line.
func MergeMustBuy(list *kitchen.ShoppingList, flags []kitchen.MustBuyFlag) MergeReport {
	var report MergeReport

	for _, flag := range flags {
		if i := list.OptionalIndex(flag.ItemID); i >= 0 {
			list.Promote(i)
			report.Promoted++
			continue
		}

		if list.MandatoryIndex(flag.ItemID) >= 0 {
			report.AlreadyMandatory++
			continue
		}

		list.Mandatory = append(list.Mandatory, &kitchen.ShoppingListLine{
			ItemID:      flag.ItemID,
			Amount:      placeholderAmount,
			TotalAmount: placeholderAmount,
			Recipes:     kitchen.RecipeIDSet{},
		})
		report.Added++
	}

	return report
}
