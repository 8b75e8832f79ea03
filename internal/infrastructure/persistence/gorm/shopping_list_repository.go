package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShoppingListRepository implements the shopping list repository using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// GetOpen returns the owner's newest open list, or nil
func (r *ShoppingListRepository) GetOpen(ctx context.Context, owner string) (*kitchen.ShoppingList, error) {
	var models []ShoppingListModel
	err := conn(ctx, r.db).
		Where("owner = ? AND is_done = ?", owner, false).
		Order("created_on DESC").
		Limit(1).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load open list: %w", err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return ModelToShoppingList(&models[0]), nil
}

// Upsert inserts the list or overwrites the stored row
func (r *ShoppingListRepository) Upsert(ctx context.Context, list *kitchen.ShoppingList) error {
	model := ShoppingListToModel(list)
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "is_done", "mandatory", "optional", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upsert shopping list: %w", err)
	}
	list.ID = model.ID
	return nil
}

// Remove deletes a list
func (r *ShoppingListRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&ShoppingListModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("shopping list %s: %w", id, outbound.ErrNotFound)
	}
	return nil
}

// FindByID finds a list by ID
func (r *ShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.ShoppingList, error) {
	var model ShoppingListModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shopping list %s: %w", id, outbound.ErrNotFound)
		}
		return nil, err
	}
	return ModelToShoppingList(&model), nil
}

// FindClosed returns one page of done lists, newest first
func (r *ShoppingListRepository) FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.ShoppingList, int, error) {
	var total int64
	err := conn(ctx, r.db).Model(&ShoppingListModel{}).
		Where("owner = ? AND is_done = ?", owner, true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count closed lists: %w", err)
	}

	var models []ShoppingListModel
	err = conn(ctx, r.db).
		Where("owner = ? AND is_done = ?", owner, true).
		Order("created_on DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load closed lists: %w", err)
	}

	lists := make([]*kitchen.ShoppingList, len(models))
	for i := range models {
		lists[i] = ModelToShoppingList(&models[i])
	}
	return lists, int(total), nil
}
