package kitchen

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// CreateItem adds an item to the owner's pantry
func (s *Service) CreateItem(ctx context.Context, cmd inbound.CreateItemCommand) (*inbound.ItemDTO, error) {
	item, err := kitchen.NewItem(cmd.Owner, cmd.Name, cmd.Unit, cmd.Quantity)
	if err != nil {
		return nil, domainError(err)
	}

	item.UpdatedAt = s.now()
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("create item", err)
	}

	s.logger.Info("Item created",
		zap.String("owner", cmd.Owner),
		zap.String("item_id", item.ID.String()),
	)
	dto := toItemDTO(item)
	return &dto, nil
}

// UpdateItem edits an item directly. The quantity is overwritten outside
// the ledger, under the owner lock.
func (s *Service) UpdateItem(ctx context.Context, cmd inbound.UpdateItemCommand) (*inbound.ItemDTO, error) {
	var item *kitchen.Item

	err := s.withOwnerLock(ctx, cmd.Owner, func() error {
		var err error
		item, err = s.findItem(ctx, cmd.Owner, cmd.ItemID)
		if err != nil {
			return err
		}

		item.Name = strings.TrimSpace(cmd.Name)
		item.Unit = strings.TrimSpace(cmd.Unit)
		item.Quantity = cmd.Quantity
		item.UpdatedAt = s.now()
		if err := item.Validate(); err != nil {
			return domainError(err)
		}

		if err := s.items.UpsertBatch(ctx, []*kitchen.Item{item}); err != nil {
			return apperrors.NewDatabaseError("update item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(item)
	return &dto, nil
}

// SearchItems finds the owner's items by name
func (s *Service) SearchItems(ctx context.Context, owner, query string) ([]inbound.ItemDTO, error) {
	items, err := s.items.Search(ctx, owner, query, s.cfg.SearchLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("search items", err)
	}

	out := make([]inbound.ItemDTO, len(items))
	for i, item := range items {
		out[i] = toItemDTO(item)
	}
	return out, nil
}

// CreateRecipe adds a recipe. Every ingredient must be one of the owner's
// items.
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	ingredients := make([]kitchen.RecipeIngredient, len(cmd.Ingredients))
	for i, in := range cmd.Ingredients {
		ingredients[i] = kitchen.RecipeIngredient{ItemID: in.ItemID, Amount: in.Amount}
	}

	recipe, err := kitchen.NewRecipe(cmd.Owner, cmd.Name, ingredients)
	if err != nil {
		return nil, domainError(err)
	}

	items, err := s.loadOwnedItems(ctx, cmd.Owner, recipe.ItemIDs())
	if err != nil {
		return nil, err
	}
	for _, id := range recipe.ItemIDs() {
		if _, ok := items[id]; !ok {
			return nil, apperrors.NewItemNotFoundError(id.String())
		}
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, apperrors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Recipe created",
		zap.String("owner", cmd.Owner),
		zap.String("recipe_id", recipe.ID.String()),
		zap.Int("ingredients", len(recipe.Ingredients)),
	)
	dto := toRecipeDTO(recipe, items)
	return &dto, nil
}

// GetRecipe returns one of the owner's recipes
func (s *Service) GetRecipe(ctx context.Context, owner string, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, repoError(err, apperrors.NewRecipeNotFoundError(recipeID.String()), "load recipe")
	}
	if recipe.Owner != owner {
		return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
	}

	items, err := s.loadOwnedItems(ctx, owner, recipe.ItemIDs())
	if err != nil {
		return nil, err
	}
	dto := toRecipeDTO(recipe, items)
	return &dto, nil
}

// ListRecipes returns a page of the owner's recipes ordered by name
func (s *Service) ListRecipes(ctx context.Context, owner string, page int) (*inbound.Page[inbound.RecipeDTO], error) {
	page, offset := s.offset(page)
	recipes, total, err := s.recipes.FindByOwner(ctx, owner, offset, s.cfg.PageSize)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}

	var itemIDs []uuid.UUID
	for _, r := range recipes {
		itemIDs = append(itemIDs, r.ItemIDs()...)
	}
	items, err := s.loadOwnedItems(ctx, owner, itemIDs)
	if err != nil {
		return nil, err
	}

	out := &inbound.Page[inbound.RecipeDTO]{
		Items:    make([]inbound.RecipeDTO, len(recipes)),
		Page:     page,
		PageSize: s.cfg.PageSize,
		Total:    total,
	}
	for i, r := range recipes {
		out.Items[i] = toRecipeDTO(r, items)
	}
	return out, nil
}

// AddMustBuy flags an item for the next generated list. Flagging an item
// that is already flagged returns the existing flag.
func (s *Service) AddMustBuy(ctx context.Context, owner string, itemID uuid.UUID) (*inbound.MustBuyDTO, error) {
	item, err := s.findItem(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}

	flag, err := kitchen.NewMustBuyFlag(owner, itemID)
	if err != nil {
		return nil, domainError(err)
	}
	flag.CreatedAt = s.now()

	if err := s.mustBuy.Add(ctx, flag); err != nil {
		return nil, apperrors.NewDatabaseError("add must-buy flag", err)
	}

	flags, err := s.mustBuy.GetAll(ctx, owner)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load must-buy flags", err)
	}
	stored := *flag
	for _, f := range flags {
		if f.ItemID == itemID {
			stored = f
			break
		}
	}

	items := map[uuid.UUID]*kitchen.Item{item.ID: item}
	dto := toMustBuyDTO(stored, items)
	return &dto, nil
}

// ListMustBuy returns the owner's flags in the order they were raised
func (s *Service) ListMustBuy(ctx context.Context, owner string) ([]inbound.MustBuyDTO, error) {
	flags, err := s.mustBuy.GetAll(ctx, owner)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load must-buy flags", err)
	}

	ids := make([]uuid.UUID, len(flags))
	for i, f := range flags {
		ids[i] = f.ItemID
	}
	items, err := s.loadOwnedItems(ctx, owner, ids)
	if err != nil {
		return nil, err
	}

	out := make([]inbound.MustBuyDTO, len(flags))
	for i, f := range flags {
		out[i] = toMustBuyDTO(f, items)
	}
	return out, nil
}

func (s *Service) findItem(ctx context.Context, owner string, itemID uuid.UUID) (*kitchen.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, repoError(err, apperrors.NewItemNotFoundError(itemID.String()), "load item")
	}
	if item.Owner != owner {
		return nil, apperrors.NewItemNotFoundError(itemID.String())
	}
	return item, nil
}
