//go:build integration

// Package integration runs the kitchen use cases against a real PostgreSQL
package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	app "github.com/pantryhq/pantry/internal/application/kitchen"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	gormrepo "github.com/pantryhq/pantry/internal/infrastructure/persistence/gorm"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/memory"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"github.com/pantryhq/pantry/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type KitchenIntegrationTestSuite struct {
	suite.Suite
	ctx     context.Context
	testDB  *testutils.TestDatabase
	items   outbound.ItemRepository
	recipes outbound.RecipeRepository
	plans   outbound.PlanRepository
	service inbound.KitchenService
	factory *testutils.KitchenFactory
	owner   string
	flour   *kitchen.Item
	eggs    *kitchen.Item
	cake    *kitchen.Recipe
}

func TestKitchenIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(KitchenIntegrationTestSuite))
}

func (s *KitchenIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testutils.SetupTestDatabase(s.T())
	s.factory = testutils.NewKitchenFactory(time.Now().UnixNano())

	db := s.testDB.GormDB
	s.items = gormrepo.NewItemRepository(db)
	s.recipes = gormrepo.NewRecipeRepository(db)
	s.plans = gormrepo.NewPlanRepository(db)
	s.service = app.NewService(app.Dependencies{
		Items:      s.items,
		Recipes:    s.recipes,
		Plans:      s.plans,
		Lists:      gormrepo.NewShoppingListRepository(db),
		MustBuy:    gormrepo.NewMustBuyRepository(db),
		Transactor: gormrepo.NewTransactor(db),
		Locker:     memory.NewUserLocker(),
	}, app.Config{PageSize: 10, UpcomingDays: 7}, zaptest.NewLogger(s.T()))
}

func (s *KitchenIntegrationTestSuite) SetupTest() {
	testutils.TruncateAll(s.ctx, s.T(), s.testDB.GormDB)

	s.owner = s.factory.Owner()
	s.flour = s.factory.Item(s.owner, "1.5")
	s.eggs = s.factory.Item(s.owner, "10")
	s.Require().NoError(s.items.Create(s.ctx, s.flour))
	s.Require().NoError(s.items.Create(s.ctx, s.eggs))

	s.cake = s.factory.Recipe(s.owner,
		testutils.Ingredient(s.flour, "0.75"),
		testutils.Ingredient(s.eggs, "2"),
	)
	s.Require().NoError(s.recipes.Create(s.ctx, s.cake))
}

func (s *KitchenIntegrationTestSuite) quantity(item *kitchen.Item) string {
	var raw string
	err := s.testDB.PgxPool.QueryRow(s.ctx, `SELECT quantity::text FROM items WHERE id = $1`, item.ID.String()).Scan(&raw)
	s.Require().NoError(err)
	return testutils.Dec(raw).String()
}

func (s *KitchenIntegrationTestSuite) TestFractionalDemandRoundTrips() {
	tomorrow := kitchen.TruncateDay(time.Now()).AddDate(0, 0, 1)
	for day := 0; day < 3; day++ {
		_, err := s.service.CreatePlan(s.ctx, inbound.CreatePlanCommand{
			Owner:   s.owner,
			Date:    tomorrow.AddDate(0, 0, day),
			Entries: []inbound.PlanEntryInput{{RecipeID: s.cake.ID}},
		})
		s.Require().NoError(err)
	}

	result, err := s.service.GenerateList(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().NotNil(result.List)

	s.Require().Len(result.List.Mandatory, 1)
	flour := result.List.Mandatory[0]
	s.True(flour.TotalAmount.Equal(testutils.Dec("2.25")), flour.TotalAmount.String())
	s.True(flour.Amount.Equal(testutils.Dec("0.75")), flour.Amount.String())

	s.Require().Len(result.List.Optional, 1)
	s.True(result.List.Optional[0].Amount.Equal(testutils.Dec("6")))

	open, err := s.service.GetOpenList(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal(result.List.ID, open.ID)
	s.True(open.Mandatory[0].Amount.Equal(flour.Amount))
}

func (s *KitchenIntegrationTestSuite) TestPlanCompletionAdjustsStoredQuantity() {
	plan, err := s.service.CreatePlan(s.ctx, inbound.CreatePlanCommand{
		Owner:   s.owner,
		Date:    kitchen.TruncateDay(time.Now()),
		Entries: []inbound.PlanEntryInput{{RecipeID: s.cake.ID, IsDone: true}},
	})
	s.Require().NoError(err)

	s.Equal("0.75", s.quantity(s.flour))
	s.Equal("8", s.quantity(s.eggs))

	entries := []inbound.PlanEntryInput{{ID: plan.Entries[0].ID, RecipeID: s.cake.ID, IsDone: false}}
	_, err = s.service.UpdatePlan(s.ctx, inbound.UpdatePlanCommand{
		Owner:   s.owner,
		PlanID:  plan.ID,
		Entries: entries,
	})
	s.Require().NoError(err)

	s.Equal("1.5", s.quantity(s.flour))
	s.Equal("10", s.quantity(s.eggs))
}

func (s *KitchenIntegrationTestSuite) TestConcurrentGenerationLeavesOneOpenList() {
	_, err := s.service.CreatePlan(s.ctx, inbound.CreatePlanCommand{
		Owner:   s.owner,
		Date:    kitchen.TruncateDay(time.Now()).AddDate(0, 0, 1),
		Entries: []inbound.PlanEntryInput{{RecipeID: s.cake.ID}},
	})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.GenerateList(s.ctx, s.owner)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(s.T(), err)
	}

	var open int
	err = s.testDB.PgxPool.QueryRow(s.ctx,
		`SELECT COUNT(*) FROM shopping_lists WHERE owner = $1 AND is_done = FALSE`, s.owner).Scan(&open)
	s.Require().NoError(err)
	s.Equal(1, open)
}

func (s *KitchenIntegrationTestSuite) TestOnePlanPerDayIsEnforcedByTheSchema() {
	day := kitchen.TruncateDay(time.Now()).AddDate(0, 0, 2)
	s.Require().NoError(s.plans.Upsert(s.ctx, s.factory.Plan(s.owner, day)))

	err := s.plans.Upsert(s.ctx, s.factory.Plan(s.owner, day))
	s.Error(err)
}
