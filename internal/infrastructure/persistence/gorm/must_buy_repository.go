package gorm

import (
	"context"
	"fmt"

	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MustBuyRepository implements the must-buy repository interface using GORM
type MustBuyRepository struct {
	db *gorm.DB
}

// NewMustBuyRepository creates a new must-buy repository
func NewMustBuyRepository(db *gorm.DB) outbound.MustBuyRepository {
	return &MustBuyRepository{db: db}
}

// GetAll returns the owner's flags in the order they were raised
func (r *MustBuyRepository) GetAll(ctx context.Context, owner string) ([]kitchen.MustBuyFlag, error) {
	var models []MustBuyFlagModel
	err := conn(ctx, r.db).
		Where("owner = ?", owner).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load must-buy flags: %w", err)
	}

	flags := make([]kitchen.MustBuyFlag, len(models))
	for i := range models {
		flags[i] = ModelToMustBuyFlag(&models[i])
	}
	return flags, nil
}

// Add stores a flag. Flagging an item twice keeps the first flag.
func (r *MustBuyRepository) Add(ctx context.Context, flag *kitchen.MustBuyFlag) error {
	model := MustBuyFlagToModel(flag)
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "item_id"}},
		DoNothing: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("add must-buy flag: %w", err)
	}
	return nil
}

// Clear removes all of the owner's flags
func (r *MustBuyRepository) Clear(ctx context.Context, owner string) error {
	if err := conn(ctx, r.db).Where("owner = ?", owner).Delete(&MustBuyFlagModel{}).Error; err != nil {
		return fmt.Errorf("clear must-buy flags: %w", err)
	}
	return nil
}
