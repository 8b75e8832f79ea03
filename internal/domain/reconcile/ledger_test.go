package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite covers done-state transitions and their stock effects
type LedgerTestSuite struct {
	suite.Suite
	factory *testutils.KitchenFactory
	owner   string
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.factory = testutils.NewKitchenFactory(99)
	suite.owner = suite.factory.Owner()
}

func (suite *LedgerTestSuite) TestLineTransitions() {
	suite.Run("PendingToDone_ShouldConsumeLineAmount", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "10")
		prev := testutils.Line(x, "3", "5", false)
		next := testutils.Line(x, "3", "5", true)

		// Act
		deltas := LineTransition(prev, next)
		result := ApplyDeltas(testutils.Items(x), deltas)

		// Assert
		require.Len(suite.T(), deltas, 1)
		assert.Equal(suite.T(), Consume, deltas[0].Direction)
		la.Decimal("7", x.Quantity)
		assert.Equal(suite.T(), []*kitchen.Item{x}, result.Updated)
	})

	suite.Run("RoundTripAfterClamp_ShouldEndAtAmount", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "2")
		items := testutils.Items(x)
		pending := testutils.Line(x, "5", "5", false)
		done := testutils.Line(x, "5", "5", true)

		// Act
		ApplyDeltas(items, LineTransition(pending, done))
		afterForward := x.Quantity
		ApplyDeltas(items, LineTransition(done, pending))

		// Assert
		la.Decimal("0", afterForward)
		la.Decimal("5", x.Quantity)
	})

	suite.Run("RoundTripWithoutClamp_ShouldRestoreExactly", func() {
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "7.25")
		items := testutils.Items(x)
		pending := testutils.Line(x, "2.5", "2.5", false)
		done := testutils.Line(x, "2.5", "2.5", true)

		ApplyDeltas(items, LineTransition(pending, done))
		ApplyDeltas(items, LineTransition(done, pending))

		la.Decimal("7.25", x.Quantity)
	})

	suite.Run("Undo_ShouldUseStoredAmountNotSubmittedAmount", func() {
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "0")
		stored := testutils.Line(x, "4", "4", true)
		submitted := testutils.Line(x, "9", "9", false)

		deltas := LineTransition(stored, submitted)
		ApplyDeltas(testutils.Items(x), deltas)

		require.Len(suite.T(), deltas, 1)
		assert.Equal(suite.T(), Restore, deltas[0].Direction)
		la.Decimal("4", x.Quantity)
	})

	suite.Run("NoPriorState_ShouldCountAsPending", func() {
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "3")

		ApplyDeltas(testutils.Items(x), LineTransition(nil, testutils.Line(x, "1", "1", true)))

		la.Decimal("2", x.Quantity)
	})

	suite.Run("UnchangedState_ShouldNotMutate", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "6")
		items := testutils.Items(x)

		// Act
		d1 := LineTransition(testutils.Line(x, "2", "2", false), testutils.Line(x, "2", "2", false))
		d2 := LineTransition(testutils.Line(x, "2", "2", true), testutils.Line(x, "2", "2", true))
		result := ApplyDeltas(items, append(d1, d2...))

		// Assert
		assert.Empty(suite.T(), d1)
		assert.Empty(suite.T(), d2)
		assert.Empty(suite.T(), result.Updated)
		la.Decimal("6", x.Quantity)
	})
}

func (suite *LedgerTestSuite) TestListTransitions() {
	suite.Run("BothPartitions_ShouldBeDiffedByItem", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		a := suite.factory.Item(suite.owner, "10")
		b := suite.factory.Item(suite.owner, "10")
		c := suite.factory.Item(suite.owner, "10")

		prev := &kitchen.ShoppingList{
			Mandatory: []*kitchen.ShoppingListLine{testutils.Line(a, "2", "2", false), testutils.Line(c, "1", "1", true)},
			Optional:  []*kitchen.ShoppingListLine{testutils.Line(b, "3", "3", false)},
		}
		next := &kitchen.ShoppingList{
			Mandatory: []*kitchen.ShoppingListLine{testutils.Line(a, "2", "2", true), testutils.Line(c, "1", "1", true)},
			Optional:  []*kitchen.ShoppingListLine{testutils.Line(b, "3", "3", true)},
		}

		// Act
		result := ApplyDeltas(testutils.Items(a, b, c), ListTransitions(prev, next))

		// Assert
		la.Decimal("8", a.Quantity)
		la.Decimal("7", b.Quantity)
		la.Decimal("10", c.Quantity)
		assert.Equal(suite.T(), 2, result.Applied)
	})

	suite.Run("LineMovedBetweenPartitions_ShouldMatchByItem", func() {
		la := testutils.NewListAssertions(suite.T())
		a := suite.factory.Item(suite.owner, "5")
		prev := &kitchen.ShoppingList{Optional: []*kitchen.ShoppingListLine{testutils.Line(a, "2", "2", true)}}
		next := &kitchen.ShoppingList{Mandatory: []*kitchen.ShoppingListLine{testutils.Line(a, "2", "2", true)}}

		deltas := ListTransitions(prev, next)
		ApplyDeltas(testutils.Items(a), deltas)

		assert.Empty(suite.T(), deltas)
		la.Decimal("5", a.Quantity)
	})
}

func (suite *LedgerTestSuite) TestPlanTransitions() {
	suite.Run("CookedEntry_ShouldConsumeEveryIngredient", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "5")
		y := suite.factory.Item(suite.owner, "1")
		recipe := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "2"), testutils.Ingredient(y, "3"))
		prev := testutils.Entry(recipe, false)
		next := prev
		next.IsDone = true

		// Act
		deltas := PlanTransition(&prev, &next, recipe)
		result := ApplyDeltas(testutils.Items(x, y), deltas)

		// Assert
		assert.Len(suite.T(), deltas, 2)
		la.Decimal("3", x.Quantity)
		la.Decimal("0", y.Quantity)
		assert.Len(suite.T(), result.Updated, 2)
	})

	suite.Run("UndoCookedEntry_ShouldRestoreRecipeAmounts", func() {
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "0")
		recipe := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "2"))
		prev := testutils.Entry(recipe, true)
		next := prev
		next.IsDone = false

		ApplyDeltas(testutils.Items(x), PlanTransition(&prev, &next, recipe))

		la.Decimal("2", x.Quantity)
	})

	suite.Run("MissingItem_ShouldSkipOnlyThatIngredient", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "5")
		ghost := suite.factory.Item(suite.owner, "5")
		recipe := suite.factory.Recipe(suite.owner, testutils.Ingredient(ghost, "1"), testutils.Ingredient(x, "1"))
		next := testutils.Entry(recipe, true)

		// Act
		result := ApplyDeltas(testutils.Items(x), PlanTransition(nil, &next, recipe))

		// Assert
		assert.Equal(suite.T(), []uuid.UUID{ghost.ID}, result.Skipped)
		la.Decimal("4", x.Quantity)
		assert.Equal(suite.T(), 1, result.Applied)
	})

	suite.Run("PlanDiff_ShouldMatchEntriesByID", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "10")
		r1 := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "1"))
		r2 := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "4"))
		cooked := testutils.Entry(r1, true)
		pending := testutils.Entry(r1, false)
		prev := &kitchen.Plan{Entries: []kitchen.PlanEntry{cooked, pending}}

		undone := cooked
		undone.IsDone = false
		nowCooked := pending
		nowCooked.IsDone = true
		fresh := testutils.Entry(r2, true)
		next := &kitchen.Plan{Entries: []kitchen.PlanEntry{undone, nowCooked, fresh}}

		// Act
		out := PlanTransitions(prev, next, map[uuid.UUID]*kitchen.Recipe{r1.ID: r1, r2.ID: r2})
		ApplyDeltas(testutils.Items(x), out.Deltas)

		// Assert
		assert.Len(suite.T(), out.Deltas, 3)
		assert.Empty(suite.T(), out.MissingRecipes)
		la.Decimal("6", x.Quantity)
	})

	suite.Run("PlanDiffWithMissingRecipe_ShouldReportIt", func() {
		x := suite.factory.Item(suite.owner, "1")
		gone := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "1"))
		next := &kitchen.Plan{Entries: []kitchen.PlanEntry{testutils.Entry(gone, true)}}

		out := PlanTransitions(nil, next, map[uuid.UUID]*kitchen.Recipe{})

		assert.Empty(suite.T(), out.Deltas)
		assert.Equal(suite.T(), []uuid.UUID{gone.ID}, out.MissingRecipes)
	})

	suite.Run("EngineEntryPoints_ShouldMatchFunctions", func() {
		x := suite.factory.Item(suite.owner, "1")
		recipe := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "1"))
		entry := testutils.Entry(recipe, true)
		engine := NewEngine()

		assert.Equal(suite.T(), PlanTransition(nil, &entry, recipe), engine.ApplyPlanTransition(nil, &entry, recipe))
		assert.Equal(suite.T(),
			LineTransition(nil, testutils.Line(x, "1", "1", true)),
			engine.ApplyLineTransition(nil, testutils.Line(x, "1", "1", true)),
		)
		assert.Nil(suite.T(), engine.ApplyPlanTransition(nil, &entry, nil))
	})
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
