package kitchen

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/domain/reconcile"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// GenerateList replaces the owner's open shopping list with one computed
// from the pending plan entries and must-buy flags
func (s *Service) GenerateList(ctx context.Context, owner string) (*inbound.GenerateListResult, error) {
	s.logger.Info("Generating shopping list", zap.String("owner", owner))

	var (
		result   reconcile.GenerateResult
		items    map[uuid.UUID]*kitchen.Item
		recipes  map[uuid.UUID]*kitchen.Recipe
		recorder shared.EventRecorder
	)

	err := s.withOwnerLock(ctx, owner, func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			open, err := s.lists.GetOpen(ctx, owner)
			if err != nil {
				return apperrors.NewDatabaseError("load open list", err)
			}
			if open != nil {
				if err := s.lists.Remove(ctx, open.ID); err != nil {
					return apperrors.NewDatabaseError("remove open list", err)
				}
			}

			entries, err := s.plans.GetOpenEntries(ctx, owner)
			if err != nil {
				return apperrors.NewDatabaseError("load plan entries", err)
			}

			recipes, err = s.loadOwnedRecipes(ctx, owner, pendingRecipeIDs(entries))
			if err != nil {
				return err
			}

			flags, err := s.mustBuy.GetAll(ctx, owner)
			if err != nil {
				return apperrors.NewDatabaseError("load must-buy flags", err)
			}

			items, err = s.loadOwnedItems(ctx, owner, demandItemIDs(recipes, flags))
			if err != nil {
				return err
			}

			occurrences := make([]*kitchen.Recipe, 0, len(recipes))
			for _, r := range recipes {
				occurrences = append(occurrences, r)
			}
			result = s.engine.GenerateList(owner, entries, occurrences, items, flags)
			if result.Empty() {
				return nil
			}

			if err := s.lists.Upsert(ctx, result.List); err != nil {
				return apperrors.NewDatabaseError("save shopping list", err)
			}
			if err := s.mustBuy.Clear(ctx, owner); err != nil {
				return apperrors.NewDatabaseError("clear must-buy flags", err)
			}

			recorder.Record(kitchen.ShoppingListGeneratedEvent{
				ListID:         result.List.ID,
				Owner:          owner,
				MandatoryLines: len(result.List.Mandatory),
				OptionalLines:  len(result.List.Optional),
				FlagsConsumed:  result.Merge.Promoted + result.Merge.Added + result.Merge.AlreadyMandatory,
				GeneratedAt:    result.List.CreatedOn,
			})
			return nil
		})
	})
	if err != nil {
		s.logger.Error("Failed to generate shopping list", zap.String("owner", owner), zap.Error(err))
		return nil, txError(err, "generate shopping list")
	}

	if n := len(result.MissingRecipes); n > 0 {
		s.metrics.ReferencesSkipped("recipe", n)
		s.logger.Warn("Skipped plan entries with missing recipes", zap.String("owner", owner), zap.Int("skipped", n))
	}
	if n := len(result.UnknownItems); n > 0 {
		s.metrics.ReferencesSkipped("item", n)
		s.logger.Warn("Skipped references to missing items", zap.String("owner", owner), zap.Int("skipped", n))
	}

	out := &inbound.GenerateListResult{
		Empty:          result.Empty(),
		MissingRecipes: result.MissingRecipes,
		UnknownItems:   result.UnknownItems,
		FlagsPromoted:  result.Merge.Promoted,
		FlagsAdded:     result.Merge.Added,
	}
	if result.Empty() {
		s.metrics.ListEmpty()
		s.logger.Info("Nothing to reconcile", zap.String("owner", owner), zap.Int("occurrences", result.Occurrences))
		return out, nil
	}

	s.metrics.ListGenerated(len(result.List.Mandatory), len(result.List.Optional))
	s.dispatch(ctx, &recorder)
	out.List = toListDTO(result.List, items, recipes)

	s.logger.Info("Shopping list generated",
		zap.String("owner", owner),
		zap.String("list_id", result.List.ID.String()),
		zap.Int("mandatory", len(result.List.Mandatory)),
		zap.Int("optional", len(result.List.Optional)),
	)
	return out, nil
}

// GetOpenList returns the owner's open list
func (s *Service) GetOpenList(ctx context.Context, owner string) (*inbound.ShoppingListDTO, error) {
	list, err := s.lists.GetOpen(ctx, owner)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load open list", err)
	}
	if list == nil {
		return nil, apperrors.NewListNotFoundError("open")
	}
	return s.listView(ctx, list)
}

// GetList returns one of the owner's lists
func (s *Service) GetList(ctx context.Context, owner string, listID uuid.UUID) (*inbound.ShoppingListDTO, error) {
	list, err := s.findList(ctx, owner, listID)
	if err != nil {
		return nil, err
	}
	return s.listView(ctx, list)
}

// GetClosedLists returns a page of done lists, newest first
func (s *Service) GetClosedLists(ctx context.Context, owner string, page int) (*inbound.Page[inbound.ShoppingListDTO], error) {
	page, offset := s.offset(page)
	lists, total, err := s.lists.FindClosed(ctx, owner, offset, s.cfg.PageSize)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load closed lists", err)
	}

	out := &inbound.Page[inbound.ShoppingListDTO]{
		Items:    make([]inbound.ShoppingListDTO, 0, len(lists)),
		Page:     page,
		PageSize: s.cfg.PageSize,
		Total:    total,
	}
	for _, list := range lists {
		dto, err := s.listView(ctx, list)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *dto)
	}
	return out, nil
}

// UpdateList replaces the lines and state of a list. Lines whose done flag
// changes move stock through the ledger.
func (s *Service) UpdateList(ctx context.Context, cmd inbound.UpdateShoppingListCommand) (*inbound.ShoppingListDTO, error) {
	s.logger.Info("Updating shopping list",
		zap.String("owner", cmd.Owner),
		zap.String("list_id", cmd.ListID.String()),
	)

	var (
		next     *kitchen.ShoppingList
		ledger   reconcile.LedgerResult
		recorder shared.EventRecorder
	)

	err := s.withOwnerLock(ctx, cmd.Owner, func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			prev, err := s.findList(ctx, cmd.Owner, cmd.ListID)
			if err != nil {
				return err
			}
			if prev.IsDone {
				return apperrors.NewListClosedError(prev.ID.String())
			}

			next = &kitchen.ShoppingList{
				ID:        prev.ID,
				Owner:     prev.Owner,
				Name:      prev.Name,
				CreatedOn: prev.CreatedOn,
				IsDone:    cmd.IsDone,
				Mandatory: linesFromInput(cmd.Mandatory),
				Optional:  linesFromInput(cmd.Optional),
			}
			if name := strings.TrimSpace(cmd.Name); name != "" {
				next.Name = name
			}
			if err := next.Validate(); err != nil {
				return domainError(err)
			}

			ledger, err = s.adjustStock(ctx, cmd.Owner, "shopping_list", next.ID, reconcile.ListTransitions(prev, next), &recorder)
			if err != nil {
				return err
			}

			if err := s.lists.Upsert(ctx, next); err != nil {
				return apperrors.NewDatabaseError("save shopping list", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, txError(err, "update shopping list")
	}

	s.afterStockChange("shopping_list", ledger)
	s.dispatch(ctx, &recorder)

	return s.listView(ctx, next)
}

// DeleteList removes one of the owner's lists without touching stock
func (s *Service) DeleteList(ctx context.Context, owner string, listID uuid.UUID) error {
	return s.withOwnerLock(ctx, owner, func() error {
		list, err := s.findList(ctx, owner, listID)
		if err != nil {
			return err
		}
		if err := s.lists.Remove(ctx, list.ID); err != nil {
			return repoError(err, apperrors.NewListNotFoundError(listID.String()), "delete shopping list")
		}
		s.logger.Info("Shopping list deleted", zap.String("owner", owner), zap.String("list_id", listID.String()))
		return nil
	})
}

func (s *Service) findList(ctx context.Context, owner string, listID uuid.UUID) (*kitchen.ShoppingList, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, repoError(err, apperrors.NewListNotFoundError(listID.String()), "load shopping list")
	}
	if list.Owner != owner {
		return nil, apperrors.NewListNotFoundError(listID.String())
	}
	return list, nil
}

// listView joins a list with its item and recipe details
func (s *Service) listView(ctx context.Context, list *kitchen.ShoppingList) (*inbound.ShoppingListDTO, error) {
	items, err := s.loadOwnedItems(ctx, list.Owner, list.ItemIDs())
	if err != nil {
		return nil, err
	}
	recipes, err := s.loadOwnedRecipes(ctx, list.Owner, list.RecipeIDs())
	if err != nil {
		return nil, err
	}
	return toListDTO(list, items, recipes), nil
}

func pendingRecipeIDs(entries []kitchen.PlanEntry) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	var ids []uuid.UUID
	for _, e := range entries {
		if e.IsDone {
			continue
		}
		if _, ok := seen[e.RecipeID]; ok {
			continue
		}
		seen[e.RecipeID] = struct{}{}
		ids = append(ids, e.RecipeID)
	}
	return ids
}

func demandItemIDs(recipes map[uuid.UUID]*kitchen.Recipe, flags []kitchen.MustBuyFlag) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, r := range recipes {
		for _, id := range r.ItemIDs() {
			add(id)
		}
	}
	for _, f := range flags {
		add(f.ItemID)
	}
	return ids
}
