package gorm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	repo "github.com/pantryhq/pantry/internal/infrastructure/persistence/gorm"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"github.com/pantryhq/pantry/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RepositoryTestSuite runs the GORM repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	ctx     context.Context
	factory *testutils.KitchenFactory
	owner   string

	items   outbound.ItemRepository
	recipes outbound.RecipeRepository
	plans   outbound.PlanRepository
	lists   outbound.ShoppingListRepository
	flags   outbound.MustBuyRepository
	tx      outbound.Transactor
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.db = testutils.SetupSQLite(suite.T())
	suite.ctx = context.Background()
	suite.factory = testutils.NewKitchenFactory(21)
	suite.owner = suite.factory.Owner()

	suite.items = repo.NewItemRepository(suite.db)
	suite.recipes = repo.NewRecipeRepository(suite.db)
	suite.plans = repo.NewPlanRepository(suite.db)
	suite.lists = repo.NewShoppingListRepository(suite.db)
	suite.flags = repo.NewMustBuyRepository(suite.db)
	suite.tx = repo.NewTransactor(suite.db)
}

func (suite *RepositoryTestSuite) TestItems() {
	suite.Run("UpsertBatch_ShouldInsertAndOverwrite", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		a := suite.factory.Item(suite.owner, "2.5")
		b := suite.factory.Item(suite.owner, "4")
		require.NoError(suite.T(), suite.items.UpsertBatch(suite.ctx, []*kitchen.Item{a, b}))

		// Act
		a.Quantity = testutils.Dec("0.5")
		require.NoError(suite.T(), suite.items.UpsertBatch(suite.ctx, []*kitchen.Item{a}))
		got, err := suite.items.GetByIDs(suite.ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), got, 2)
		la.Decimal("0.5", got[a.ID].Quantity)
		la.Decimal("4", got[b.ID].Quantity)
		assert.Equal(suite.T(), b.Name, got[b.ID].Name)
	})

	suite.Run("GetByIDs_WithNoIDs_ShouldReturnEmptyMap", func() {
		got, err := suite.items.GetByIDs(suite.ctx, nil)

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), got)
	})

	suite.Run("FindByID_Missing_ShouldWrapNotFound", func() {
		_, err := suite.items.FindByID(suite.ctx, uuid.New())

		assert.True(suite.T(), errors.Is(err, outbound.ErrNotFound))
	})

	suite.Run("Search_ShouldMatchCaseInsensitiveWithinOwner", func() {
		// Arrange
		owner := suite.factory.Owner()
		flour := suite.factory.Item(owner, "1")
		flour.Name = "Wheat Flour"
		milk := suite.factory.Item(owner, "1")
		milk.Name = "Milk"
		foreign := suite.factory.Item(suite.factory.Owner(), "1")
		foreign.Name = "Rye flour"
		for _, it := range []*kitchen.Item{flour, milk, foreign} {
			require.NoError(suite.T(), suite.items.Create(suite.ctx, it))
		}

		// Act
		found, err := suite.items.Search(suite.ctx, owner, "FLOUR", 10)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), found, 1)
		assert.Equal(suite.T(), flour.ID, found[0].ID)
	})
}

func (suite *RepositoryTestSuite) TestRecipes() {
	suite.Run("Create_ShouldRoundTripIngredients", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		x := suite.factory.Item(suite.owner, "0")
		y := suite.factory.Item(suite.owner, "0")
		r := suite.factory.Recipe(suite.owner, testutils.Ingredient(x, "0.25"), testutils.Ingredient(y, "3"))

		// Act
		require.NoError(suite.T(), suite.recipes.Create(suite.ctx, r))
		got, err := suite.recipes.FindByID(suite.ctx, r.ID)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), got.Ingredients, 2)
		assert.Equal(suite.T(), x.ID, got.Ingredients[0].ItemID)
		la.Decimal("0.25", got.Ingredients[0].Amount)
		la.Decimal("3", got.Ingredients[1].Amount)
	})

	suite.Run("GetByIDs_ShouldSkipMissing", func() {
		r := suite.factory.Recipe(suite.owner)
		require.NoError(suite.T(), suite.recipes.Create(suite.ctx, r))

		got, err := suite.recipes.GetByIDs(suite.ctx, []uuid.UUID{r.ID, uuid.New()})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), got, 1)
		assert.Equal(suite.T(), r.ID, got[0].ID)
	})

	suite.Run("FindByOwner_ShouldPage", func() {
		owner := suite.factory.Owner()
		for i := 0; i < 3; i++ {
			require.NoError(suite.T(), suite.recipes.Create(suite.ctx, suite.factory.Recipe(owner)))
		}

		page, total, err := suite.recipes.FindByOwner(suite.ctx, owner, 2, 2)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3, total)
		assert.Len(suite.T(), page, 1)
	})
}

func (suite *RepositoryTestSuite) TestPlans() {
	day := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)

	suite.Run("GetOpenEntries_ShouldSkipClosedPlans", func() {
		// Arrange
		owner := suite.factory.Owner()
		r := suite.factory.Recipe(owner)
		open := suite.factory.Plan(owner, day, testutils.Entry(r, false), testutils.Entry(r, true))
		closed := suite.factory.Plan(owner, day.AddDate(0, 0, 1), testutils.Entry(r, false))
		closed.IsDone = true
		require.NoError(suite.T(), suite.plans.Upsert(suite.ctx, open))
		require.NoError(suite.T(), suite.plans.Upsert(suite.ctx, closed))

		// Act
		entries, err := suite.plans.GetOpenEntries(suite.ctx, owner)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), open.Entries, entries)
	})

	suite.Run("FindByDate_And_FindBetween", func() {
		owner := suite.factory.Owner()
		p1 := suite.factory.Plan(owner, day)
		p2 := suite.factory.Plan(owner, day.AddDate(0, 0, 3))
		p3 := suite.factory.Plan(owner, day.AddDate(0, 0, 9))
		for _, p := range []*kitchen.Plan{p3, p1, p2} {
			require.NoError(suite.T(), suite.plans.Upsert(suite.ctx, p))
		}

		got, err := suite.plans.FindByDate(suite.ctx, owner, day.Add(15*time.Hour))
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), p1.ID, got.ID)

		between, err := suite.plans.FindBetween(suite.ctx, owner, day, day.AddDate(0, 0, 6))
		require.NoError(suite.T(), err)
		require.Len(suite.T(), between, 2)
		assert.Equal(suite.T(), p1.ID, between[0].ID)
		assert.Equal(suite.T(), p2.ID, between[1].ID)

		_, err = suite.plans.FindByDate(suite.ctx, owner, day.AddDate(0, 0, 1))
		assert.True(suite.T(), errors.Is(err, outbound.ErrNotFound))
	})

	suite.Run("Upsert_ShouldOverwriteEntries", func() {
		owner := suite.factory.Owner()
		r := suite.factory.Recipe(owner)
		p := suite.factory.Plan(owner, day, testutils.Entry(r, false))
		require.NoError(suite.T(), suite.plans.Upsert(suite.ctx, p))

		p.Entries[0].IsDone = true
		p.IsDone = true
		require.NoError(suite.T(), suite.plans.Upsert(suite.ctx, p))

		got, err := suite.plans.FindByID(suite.ctx, p.ID)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), got.IsDone)
		assert.True(suite.T(), got.Entries[0].IsDone)

		closed, total, err := suite.plans.FindClosed(suite.ctx, owner, 0, 10)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, total)
		assert.Equal(suite.T(), p.ID, closed[0].ID)
	})

	suite.Run("Remove_Missing_ShouldWrapNotFound", func() {
		err := suite.plans.Remove(suite.ctx, uuid.New())

		assert.True(suite.T(), errors.Is(err, outbound.ErrNotFound))
	})
}

func (suite *RepositoryTestSuite) TestShoppingLists() {
	suite.Run("GetOpen_WithNone_ShouldReturnNil", func() {
		list, err := suite.lists.GetOpen(suite.ctx, suite.factory.Owner())

		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), list)
	})

	suite.Run("Upsert_ShouldRoundTripBothPartitions", func() {
		// Arrange
		la := testutils.NewListAssertions(suite.T())
		owner := suite.factory.Owner()
		x := suite.factory.Item(owner, "0")
		y := suite.factory.Item(owner, "0")
		r := suite.factory.Recipe(owner)
		list := kitchen.NewShoppingList(owner, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
		mandatory := testutils.Line(x, "5", "6", false)
		mandatory.Recipes = kitchen.RecipeIDSet{r.ID}
		list.Mandatory = []*kitchen.ShoppingListLine{mandatory}
		list.Optional = []*kitchen.ShoppingListLine{testutils.Line(y, "2", "2", true)}

		// Act
		require.NoError(suite.T(), suite.lists.Upsert(suite.ctx, list))
		got, err := suite.lists.GetOpen(suite.ctx, owner)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), got)
		assert.Equal(suite.T(), list.Name, got.Name)
		line := la.MandatoryLine(got, x.ID, "5", "6")
		assert.Equal(suite.T(), kitchen.RecipeIDSet{r.ID}, line.Recipes)
		opt := la.OptionalLine(got, y.ID, "2", "2")
		assert.True(suite.T(), opt.IsDone)
	})

	suite.Run("ClosedList_ShouldLeaveOpenQuery", func() {
		owner := suite.factory.Owner()
		list := kitchen.NewShoppingList(owner, time.Now())
		list.IsDone = true
		require.NoError(suite.T(), suite.lists.Upsert(suite.ctx, list))

		open, err := suite.lists.GetOpen(suite.ctx, owner)
		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), open)

		closed, total, err := suite.lists.FindClosed(suite.ctx, owner, 0, 10)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, total)
		assert.Equal(suite.T(), list.ID, closed[0].ID)

		require.NoError(suite.T(), suite.lists.Remove(suite.ctx, list.ID))
		_, err = suite.lists.FindByID(suite.ctx, list.ID)
		assert.True(suite.T(), errors.Is(err, outbound.ErrNotFound))
	})
}

func (suite *RepositoryTestSuite) TestMustBuy() {
	suite.Run("Add_Twice_ShouldKeepOneFlag", func() {
		// Arrange
		owner := suite.factory.Owner()
		x := suite.factory.Item(owner, "0")
		first := suite.flag(owner, x.ID)
		second := suite.flag(owner, x.ID)

		// Act
		require.NoError(suite.T(), suite.flags.Add(suite.ctx, first))
		require.NoError(suite.T(), suite.flags.Add(suite.ctx, second))
		flags, err := suite.flags.GetAll(suite.ctx, owner)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), flags, 1)
		assert.Equal(suite.T(), first.ID, flags[0].ID)
	})

	suite.Run("Clear_ShouldOnlyTouchOwner", func() {
		owner, other := suite.factory.Owner(), suite.factory.Owner()
		require.NoError(suite.T(), suite.flags.Add(suite.ctx, suite.flag(owner, uuid.New())))
		require.NoError(suite.T(), suite.flags.Add(suite.ctx, suite.flag(other, uuid.New())))

		require.NoError(suite.T(), suite.flags.Clear(suite.ctx, owner))

		mine, err := suite.flags.GetAll(suite.ctx, owner)
		require.NoError(suite.T(), err)
		theirs, err := suite.flags.GetAll(suite.ctx, other)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), mine)
		assert.Len(suite.T(), theirs, 1)
	})
}

func (suite *RepositoryTestSuite) TestTransactor() {
	suite.Run("Error_ShouldRollBackEveryWrite", func() {
		// Arrange
		x := suite.factory.Item(suite.owner, "3")
		boom := errors.New("boom")

		// Act
		err := suite.tx.WithinTransaction(suite.ctx, func(ctx context.Context) error {
			if err := suite.items.UpsertBatch(ctx, []*kitchen.Item{x}); err != nil {
				return err
			}
			return boom
		})

		// Assert
		assert.ErrorIs(suite.T(), err, boom)
		got, err := suite.items.GetByIDs(suite.ctx, []uuid.UUID{x.ID})
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), got)
	})

	suite.Run("Success_ShouldCommit", func() {
		x := suite.factory.Item(suite.owner, "3")

		err := suite.tx.WithinTransaction(suite.ctx, func(ctx context.Context) error {
			return suite.items.UpsertBatch(ctx, []*kitchen.Item{x})
		})

		require.NoError(suite.T(), err)
		got, err := suite.items.FindByID(suite.ctx, x.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), x.Name, got.Name)
	})
}

func (suite *RepositoryTestSuite) flag(owner string, itemID uuid.UUID) *kitchen.MustBuyFlag {
	f, err := kitchen.NewMustBuyFlag(owner, itemID)
	require.NoError(suite.T(), err)
	return f
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
