// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository provides a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*kitchen.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*kitchen.Item), args.Error(1)
}

func (m *MockItemRepository) UpsertBatch(ctx context.Context, items []*kitchen.Item) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockItemRepository) Create(ctx context.Context, item *kitchen.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, owner, query string, limit int) ([]*kitchen.Item, error) {
	args := m.Called(ctx, owner, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.Item), args.Error(1)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*kitchen.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *kitchen.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByOwner(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Recipe, int, error) {
	args := m.Called(ctx, owner, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*kitchen.Recipe), args.Int(1), args.Error(2)
}

// MockPlanRepository provides a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) GetOpenEntries(ctx context.Context, owner string) ([]kitchen.PlanEntry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.PlanEntry), args.Error(1)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByDate(ctx context.Context, owner string, date time.Time) (*kitchen.Plan, error) {
	args := m.Called(ctx, owner, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindBetween(ctx context.Context, owner string, from, to time.Time) ([]*kitchen.Plan, error) {
	args := m.Called(ctx, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Plan, int, error) {
	args := m.Called(ctx, owner, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*kitchen.Plan), args.Int(1), args.Error(2)
}

func (m *MockPlanRepository) Upsert(ctx context.Context, plan *kitchen.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockShoppingListRepository provides a mock implementation of ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) GetOpen(ctx context.Context, owner string) (*kitchen.ShoppingList, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) Upsert(ctx context.Context, list *kitchen.ShoppingList) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockShoppingListRepository) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.ShoppingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.ShoppingList, int, error) {
	args := m.Called(ctx, owner, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*kitchen.ShoppingList), args.Int(1), args.Error(2)
}

// MockMustBuyRepository provides a mock implementation of MustBuyRepository
type MockMustBuyRepository struct {
	mock.Mock
}

func (m *MockMustBuyRepository) GetAll(ctx context.Context, owner string) ([]kitchen.MustBuyFlag, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.MustBuyFlag), args.Error(1)
}

func (m *MockMustBuyRepository) Add(ctx context.Context, flag *kitchen.MustBuyFlag) error {
	return m.Called(ctx, flag).Error(0)
}

func (m *MockMustBuyRepository) Clear(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

// InlineTransactor runs the function without a real transaction
type InlineTransactor struct{}

func (InlineTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockKitchenService provides a mock implementation of inbound.KitchenService
type MockKitchenService struct {
	mock.Mock
}

func (m *MockKitchenService) GenerateList(ctx context.Context, owner string) (*inbound.GenerateListResult, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GenerateListResult), args.Error(1)
}

func (m *MockKitchenService) GetOpenList(ctx context.Context, owner string) (*inbound.ShoppingListDTO, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListDTO), args.Error(1)
}

func (m *MockKitchenService) GetList(ctx context.Context, owner string, listID uuid.UUID) (*inbound.ShoppingListDTO, error) {
	args := m.Called(ctx, owner, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListDTO), args.Error(1)
}

func (m *MockKitchenService) GetClosedLists(ctx context.Context, owner string, page int) (*inbound.Page[inbound.ShoppingListDTO], error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Page[inbound.ShoppingListDTO]), args.Error(1)
}

func (m *MockKitchenService) UpdateList(ctx context.Context, cmd inbound.UpdateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListDTO), args.Error(1)
}

func (m *MockKitchenService) DeleteList(ctx context.Context, owner string, listID uuid.UUID) error {
	return m.Called(ctx, owner, listID).Error(0)
}

func (m *MockKitchenService) CreatePlan(ctx context.Context, cmd inbound.CreatePlanCommand) (*inbound.PlanDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.PlanDTO), args.Error(1)
}

func (m *MockKitchenService) UpdatePlan(ctx context.Context, cmd inbound.UpdatePlanCommand) (*inbound.PlanDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.PlanDTO), args.Error(1)
}

func (m *MockKitchenService) DeletePlan(ctx context.Context, owner string, planID uuid.UUID) error {
	return m.Called(ctx, owner, planID).Error(0)
}

func (m *MockKitchenService) GetUpcomingPlans(ctx context.Context, owner string) ([]inbound.PlanDTO, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.PlanDTO), args.Error(1)
}

func (m *MockKitchenService) GetClosedPlans(ctx context.Context, owner string, page int) (*inbound.Page[inbound.PlanDTO], error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Page[inbound.PlanDTO]), args.Error(1)
}

func (m *MockKitchenService) CreateItem(ctx context.Context, cmd inbound.CreateItemCommand) (*inbound.ItemDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ItemDTO), args.Error(1)
}

func (m *MockKitchenService) UpdateItem(ctx context.Context, cmd inbound.UpdateItemCommand) (*inbound.ItemDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ItemDTO), args.Error(1)
}

func (m *MockKitchenService) SearchItems(ctx context.Context, owner, query string) ([]inbound.ItemDTO, error) {
	args := m.Called(ctx, owner, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.ItemDTO), args.Error(1)
}

func (m *MockKitchenService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockKitchenService) GetRecipe(ctx context.Context, owner string, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, owner, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockKitchenService) ListRecipes(ctx context.Context, owner string, page int) (*inbound.Page[inbound.RecipeDTO], error) {
	args := m.Called(ctx, owner, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.Page[inbound.RecipeDTO]), args.Error(1)
}

func (m *MockKitchenService) AddMustBuy(ctx context.Context, owner string, itemID uuid.UUID) (*inbound.MustBuyDTO, error) {
	args := m.Called(ctx, owner, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.MustBuyDTO), args.Error(1)
}

func (m *MockKitchenService) ListMustBuy(ctx context.Context, owner string) ([]inbound.MustBuyDTO, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.MustBuyDTO), args.Error(1)
}
