package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanRepository implements the plan repository interface using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// GetOpenEntries flattens the entries of every plan that is not done
func (r *PlanRepository) GetOpenEntries(ctx context.Context, owner string) ([]kitchen.PlanEntry, error) {
	var models []PlanModel
	err := conn(ctx, r.db).
		Where("owner = ? AND is_done = ?", owner, false).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load open plans: %w", err)
	}

	var entries []kitchen.PlanEntry
	for i := range models {
		entries = append(entries, ModelToPlan(&models[i]).Entries...)
	}
	return entries, nil
}

// FindByID finds a plan by ID
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Plan, error) {
	var model PlanModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan %s: %w", id, outbound.ErrNotFound)
		}
		return nil, err
	}
	return ModelToPlan(&model), nil
}

// FindByDate finds the owner's plan for one day
func (r *PlanRepository) FindByDate(ctx context.Context, owner string, date time.Time) (*kitchen.Plan, error) {
	var model PlanModel
	err := conn(ctx, r.db).
		Where("owner = ? AND date = ?", owner, kitchen.TruncateDay(date)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan on %s: %w", date.Format(kitchen.DateLayout), outbound.ErrNotFound)
		}
		return nil, err
	}
	return ModelToPlan(&model), nil
}

// FindBetween returns the owner's plans dated within [from, to], oldest first
func (r *PlanRepository) FindBetween(ctx context.Context, owner string, from, to time.Time) ([]*kitchen.Plan, error) {
	var models []PlanModel
	err := conn(ctx, r.db).
		Where("owner = ? AND date >= ? AND date <= ?", owner, kitchen.TruncateDay(from), kitchen.TruncateDay(to)).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	return modelsToPlans(models), nil
}

// FindClosed returns one page of done plans, newest first
func (r *PlanRepository) FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Plan, int, error) {
	var total int64
	err := conn(ctx, r.db).Model(&PlanModel{}).
		Where("owner = ? AND is_done = ?", owner, true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count closed plans: %w", err)
	}

	var models []PlanModel
	err = conn(ctx, r.db).
		Where("owner = ? AND is_done = ?", owner, true).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load closed plans: %w", err)
	}
	return modelsToPlans(models), int(total), nil
}

// Upsert inserts the plan or overwrites the stored row
func (r *PlanRepository) Upsert(ctx context.Context, plan *kitchen.Plan) error {
	model := PlanToModel(plan)
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "is_done", "entries", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	plan.ID = model.ID
	return nil
}

// Remove deletes a plan
func (r *PlanRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&PlanModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("plan %s: %w", id, outbound.ErrNotFound)
	}
	return nil
}

func modelsToPlans(models []PlanModel) []*kitchen.Plan {
	plans := make([]*kitchen.Plan, len(models))
	for i := range models {
		plans[i] = ModelToPlan(&models[i])
	}
	return plans
}
