package kitchen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// KitchenEntityTestSuite provides a test suite for the kitchen entities
type KitchenEntityTestSuite struct {
	suite.Suite
}

func (suite *KitchenEntityTestSuite) TestItem() {
	suite.Run("ValidItem_ShouldCreateSuccessfully", func() {
		// Act
		item, err := NewItem("owner-1", "  Flour ", "g", decimal.NewFromInt(500))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Flour", item.Name)
		assert.NotEqual(suite.T(), uuid.Nil, item.ID)
	})

	suite.Run("NegativeQuantity_ShouldReturnError", func() {
		item, err := NewItem("owner-1", "Flour", "g", decimal.NewFromInt(-1))

		assert.Nil(suite.T(), item)
		assert.Equal(suite.T(), ErrNegativeQuantity, err)
	})

	suite.Run("MissingOwner_ShouldReturnError", func() {
		_, err := NewItem("", "Flour", "g", decimal.Zero)

		assert.Equal(suite.T(), ErrOwnerRequired, err)
	})

	suite.Run("Consume_ShouldClampAtZero", func() {
		item := &Item{Quantity: decimal.NewFromInt(2)}

		item.Consume(decimal.NewFromInt(5))

		assert.True(suite.T(), item.Quantity.IsZero())
	})
}

func (suite *KitchenEntityTestSuite) TestRecipe() {
	suite.Run("NegativeIngredient_ShouldReturnError", func() {
		_, err := NewRecipe("owner-1", "Pancakes", []RecipeIngredient{{ItemID: uuid.New(), Amount: decimal.NewFromInt(-2)}})

		assert.Equal(suite.T(), ErrNegativeAmount, err)
	})

	suite.Run("ItemIDs_ShouldBeDistinctInOrder", func() {
		a, b := uuid.New(), uuid.New()
		r, err := NewRecipe("owner-1", "Pancakes", []RecipeIngredient{
			{ItemID: a, Amount: decimal.NewFromInt(1)},
			{ItemID: b, Amount: decimal.NewFromInt(1)},
			{ItemID: a, Amount: decimal.NewFromInt(1)},
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []uuid.UUID{a, b}, r.ItemIDs())
	})
}

func (suite *KitchenEntityTestSuite) TestShoppingList() {
	line := func(id uuid.UUID, amount, total int64) *ShoppingListLine {
		return &ShoppingListLine{ItemID: id, Amount: decimal.NewFromInt(amount), TotalAmount: decimal.NewFromInt(total)}
	}

	suite.Run("ItemInBothPartitions_ShouldFailValidation", func() {
		// Arrange
		id := uuid.New()
		list := NewShoppingList("owner-1", time.Now())
		list.Mandatory = append(list.Mandatory, line(id, 1, 1))
		list.Optional = append(list.Optional, line(id, 1, 1))

		// Act
		err := list.Validate()

		// Assert
		assert.Equal(suite.T(), ErrDuplicateLine, err)
	})

	suite.Run("AmountAboveTotal_ShouldFailValidation", func() {
		list := NewShoppingList("owner-1", time.Now())
		list.Mandatory = append(list.Mandatory, line(uuid.New(), 3, 2))

		assert.Equal(suite.T(), ErrAmountExceedsTotal, list.Validate())
	})

	suite.Run("RecipeIDs_ShouldBeDistinct", func() {
		r1, r2 := uuid.New(), uuid.New()
		list := NewShoppingList("owner-1", time.Now())
		a := line(uuid.New(), 1, 1)
		a.Recipes = RecipeIDSet{r1, r2}
		b := line(uuid.New(), 1, 1)
		b.Recipes = RecipeIDSet{r2}
		list.Mandatory = []*ShoppingListLine{a}
		list.Optional = []*ShoppingListLine{b}

		assert.Equal(suite.T(), []uuid.UUID{r1, r2}, list.RecipeIDs())
		assert.NoError(suite.T(), list.Validate())
	})
}

func (suite *KitchenEntityTestSuite) TestPlan() {
	suite.Run("NewPlan_ShouldAssignEntryIDsAndTruncateDate", func() {
		recipeID := uuid.New()
		date := time.Date(2024, time.May, 3, 18, 45, 0, 0, time.UTC)

		plan, err := NewPlan("owner-1", date, []PlanEntry{{RecipeID: recipeID}})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "2024-05-03", plan.DateLabel())
		assert.NotEqual(suite.T(), uuid.Nil, plan.Entries[0].ID)
		assert.True(suite.T(), plan.HasPending())
	})

	suite.Run("AllEntriesDone_ShouldHaveNoPending", func() {
		plan := &Plan{Entries: []PlanEntry{{ID: uuid.New(), RecipeID: uuid.New(), IsDone: true}}}

		assert.False(suite.T(), plan.HasPending())
	})

	suite.Run("EntryWithoutRecipe_ShouldFailValidation", func() {
		_, err := NewPlan("owner-1", time.Now(), []PlanEntry{{}})

		assert.Equal(suite.T(), ErrMissingRecipe, err)
	})

	suite.Run("RepeatedEntryID_ShouldFailValidation", func() {
		entry := PlanEntry{ID: uuid.New(), RecipeID: uuid.New(), IsDone: true}

		_, err := NewPlan("owner-1", time.Now(), []PlanEntry{entry, entry})

		assert.Equal(suite.T(), ErrDuplicateEntry, err)
	})

	suite.Run("SameRecipeTwice_ShouldBeValid", func() {
		recipeID := uuid.New()

		plan, err := NewPlan("owner-1", time.Now(), []PlanEntry{{RecipeID: recipeID}, {RecipeID: recipeID}})

		require.NoError(suite.T(), err)
		assert.NotEqual(suite.T(), plan.Entries[0].ID, plan.Entries[1].ID)
	})
}

func TestKitchenEntityTestSuite(t *testing.T) {
	suite.Run(t, new(KitchenEntityTestSuite))
}
