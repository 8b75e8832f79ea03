package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository implements the item repository interface using GORM
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) outbound.ItemRepository {
	return &ItemRepository{db: db}
}

// GetByIDs loads the items with the given ids
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*kitchen.Item, error) {
	items := make(map[uuid.UUID]*kitchen.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var models []ItemModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	for i := range models {
		items[models[i].ID] = ModelToItem(&models[i])
	}
	return items, nil
}

// UpsertBatch writes every item in a single statement
func (r *ItemRepository) UpsertBatch(ctx context.Context, items []*kitchen.Item) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]*ItemModel, len(items))
	for i, item := range items {
		models[i] = ItemToModel(item)
	}

	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "quantity", "unit", "updated_at"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("upsert items: %w", err)
	}
	return nil
}

// Create inserts a new item
func (r *ItemRepository) Create(ctx context.Context, item *kitchen.Item) error {
	model := ItemToModel(item)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	item.ID = model.ID
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds an item by ID
func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Item, error) {
	var model ItemModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", id, outbound.ErrNotFound)
		}
		return nil, err
	}
	return ModelToItem(&model), nil
}

// Search finds the owner's items whose name contains query
func (r *ItemRepository) Search(ctx context.Context, owner, query string, limit int) ([]*kitchen.Item, error) {
	q := conn(ctx, r.db).Where("owner = ?", owner)
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []ItemModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	items := make([]*kitchen.Item, len(models))
	for i := range models {
		items[i] = ModelToItem(&models[i])
	}
	return items, nil
}
