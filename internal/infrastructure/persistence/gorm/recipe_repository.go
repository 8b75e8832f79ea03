// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// GetByIDs loads the recipes with the given ids. Missing ids are left out.
func (r *RecipeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*kitchen.Recipe, error) {
	if len(ids) == 0 {
		return []*kitchen.Recipe{}, nil
	}

	var models []RecipeModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return modelsToRecipes(models), nil
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, recipe *kitchen.Recipe) error {
	model := RecipeToModel(recipe)

	result := conn(ctx, r.db).Create(model)
	if result.Error != nil {
		return fmt.Errorf("create recipe: %w", result.Error)
	}

	recipe.ID = model.ID
	recipe.CreatedAt = model.CreatedAt
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error) {
	var model RecipeModel

	result := conn(ctx, r.db).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, outbound.ErrNotFound)
		}
		return nil, result.Error
	}

	return ModelToRecipe(&model), nil
}

// FindByOwner returns one page of the owner's recipes and the total count
func (r *RecipeRepository) FindByOwner(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Recipe, int, error) {
	var total int64
	q := conn(ctx, r.db).Model(&RecipeModel{}).Where("owner = ?", owner)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	var models []RecipeModel
	err := conn(ctx, r.db).
		Where("owner = ?", owner).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return modelsToRecipes(models), int(total), nil
}

func modelsToRecipes(models []RecipeModel) []*kitchen.Recipe {
	recipes := make([]*kitchen.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes
}
