package kitchen

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/domain/reconcile"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// CreatePlan schedules recipes for a day. Entries created as done consume
// their ingredients immediately.
func (s *Service) CreatePlan(ctx context.Context, cmd inbound.CreatePlanCommand) (*inbound.PlanDTO, error) {
	s.logger.Info("Creating plan",
		zap.String("owner", cmd.Owner),
		zap.Time("date", cmd.Date),
		zap.Int("entries", len(cmd.Entries)),
	)

	var (
		plan     *kitchen.Plan
		recipes  map[uuid.UUID]*kitchen.Recipe
		ledger   reconcile.LedgerResult
		recorder shared.EventRecorder
	)

	err := s.withOwnerLock(ctx, cmd.Owner, func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			plan, err = kitchen.NewPlan(cmd.Owner, cmd.Date, entriesFromInput(cmd.Entries))
			if err != nil {
				return domainError(err)
			}
			if err := s.ensureDateFree(ctx, plan); err != nil {
				return err
			}

			recipes, err = s.planRecipes(ctx, plan)
			if err != nil {
				return err
			}

			ledger, err = s.applyPlan(ctx, nil, plan, recipes, &recorder)
			if err != nil {
				return err
			}

			if err := s.plans.Upsert(ctx, plan); err != nil {
				return apperrors.NewDatabaseError("save plan", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, txError(err, "create plan")
	}

	s.afterStockChange("plan", ledger)
	s.dispatch(ctx, &recorder)

	dto := toPlanDTO(plan, recipes)
	return &dto, nil
}

// UpdatePlan replaces a plan's date, state and entries. Entries are matched
// to the stored plan by id; an entry without a stored counterpart counts as
// previously pending.
func (s *Service) UpdatePlan(ctx context.Context, cmd inbound.UpdatePlanCommand) (*inbound.PlanDTO, error) {
	s.logger.Info("Updating plan",
		zap.String("owner", cmd.Owner),
		zap.String("plan_id", cmd.PlanID.String()),
	)

	var (
		next     *kitchen.Plan
		recipes  map[uuid.UUID]*kitchen.Recipe
		ledger   reconcile.LedgerResult
		recorder shared.EventRecorder
	)

	err := s.withOwnerLock(ctx, cmd.Owner, func() error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			prev, err := s.findPlan(ctx, cmd.Owner, cmd.PlanID)
			if err != nil {
				return err
			}

			next = &kitchen.Plan{
				ID:      prev.ID,
				Owner:   prev.Owner,
				Date:    prev.Date,
				IsDone:  cmd.IsDone,
				Entries: entriesFromInput(cmd.Entries),
			}
			if !cmd.Date.IsZero() {
				next.Date = kitchen.TruncateDay(cmd.Date)
			}
			next.AssignEntryIDs()
			if err := next.Validate(); err != nil {
				return domainError(err)
			}

			if !next.Date.Equal(prev.Date) {
				if err := s.ensureDateFree(ctx, next); err != nil {
					return err
				}
			}

			recipes, err = s.planRecipes(ctx, next)
			if err != nil {
				return err
			}

			ledger, err = s.applyPlan(ctx, prev, next, recipes, &recorder)
			if err != nil {
				return err
			}

			if err := s.plans.Upsert(ctx, next); err != nil {
				return apperrors.NewDatabaseError("save plan", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, txError(err, "update plan")
	}

	s.afterStockChange("plan", ledger)
	s.dispatch(ctx, &recorder)

	dto := toPlanDTO(next, recipes)
	return &dto, nil
}

// DeletePlan removes a plan without touching stock
func (s *Service) DeletePlan(ctx context.Context, owner string, planID uuid.UUID) error {
	return s.withOwnerLock(ctx, owner, func() error {
		plan, err := s.findPlan(ctx, owner, planID)
		if err != nil {
			return err
		}
		if err := s.plans.Remove(ctx, plan.ID); err != nil {
			return repoError(err, apperrors.NewPlanNotFoundError(planID.String()), "delete plan")
		}
		s.logger.Info("Plan deleted", zap.String("owner", owner), zap.String("plan_id", planID.String()))
		return nil
	})
}

// GetUpcomingPlans returns one entry per day starting today. Days without a
// stored plan appear as empty plans with a nil id; days with nothing left to
// cook are left out.
func (s *Service) GetUpcomingPlans(ctx context.Context, owner string) ([]inbound.PlanDTO, error) {
	today := kitchen.TruncateDay(s.now())
	last := today.AddDate(0, 0, s.cfg.UpcomingDays-1)

	stored, err := s.plans.FindBetween(ctx, owner, today, last)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load upcoming plans", err)
	}
	byDay := make(map[string]*kitchen.Plan, len(stored))
	for _, p := range stored {
		byDay[p.DateLabel()] = p
	}

	days := make([]*kitchen.Plan, 0, s.cfg.UpcomingDays)
	for i := 0; i < s.cfg.UpcomingDays; i++ {
		day := today.AddDate(0, 0, i)
		plan, ok := byDay[day.Format(kitchen.DateLayout)]
		if !ok {
			plan = &kitchen.Plan{Owner: owner, Date: day}
		}
		if plan.IsDone || !plan.HasPending() {
			continue
		}
		days = append(days, plan)
	}

	recipes, err := s.loadOwnedRecipes(ctx, owner, planRecipeIDs(days...))
	if err != nil {
		return nil, err
	}

	out := make([]inbound.PlanDTO, len(days))
	for i, p := range days {
		out[i] = toPlanDTO(p, recipes)
	}
	return out, nil
}

// GetClosedPlans returns a page of done plans, newest first
func (s *Service) GetClosedPlans(ctx context.Context, owner string, page int) (*inbound.Page[inbound.PlanDTO], error) {
	page, offset := s.offset(page)
	plans, total, err := s.plans.FindClosed(ctx, owner, offset, s.cfg.PageSize)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load closed plans", err)
	}

	recipes, err := s.loadOwnedRecipes(ctx, owner, planRecipeIDs(plans...))
	if err != nil {
		return nil, err
	}

	out := &inbound.Page[inbound.PlanDTO]{
		Items:    make([]inbound.PlanDTO, len(plans)),
		Page:     page,
		PageSize: s.cfg.PageSize,
		Total:    total,
	}
	for i, p := range plans {
		out.Items[i] = toPlanDTO(p, recipes)
	}
	return out, nil
}

func (s *Service) findPlan(ctx context.Context, owner string, planID uuid.UUID) (*kitchen.Plan, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, repoError(err, apperrors.NewPlanNotFoundError(planID.String()), "load plan")
	}
	if plan.Owner != owner {
		return nil, apperrors.NewPlanNotFoundError(planID.String())
	}
	return plan, nil
}

// ensureDateFree rejects a second plan for the same owner and day
func (s *Service) ensureDateFree(ctx context.Context, plan *kitchen.Plan) error {
	existing, err := s.plans.FindByDate(ctx, plan.Owner, plan.Date)
	switch {
	case errors.Is(err, outbound.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.NewDatabaseError("check plan date", err)
	case existing.ID != plan.ID:
		return apperrors.NewPlanExistsError(plan.DateLabel())
	default:
		return nil
	}
}

// planRecipes loads every recipe the plan references. Scheduling a recipe
// the owner does not have is rejected.
func (s *Service) planRecipes(ctx context.Context, plan *kitchen.Plan) (map[uuid.UUID]*kitchen.Recipe, error) {
	ids := planRecipeIDs(plan)
	recipes, err := s.loadOwnedRecipes(ctx, plan.Owner, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := recipes[id]; !ok {
			return nil, apperrors.NewRecipeNotFoundError(id.String())
		}
	}
	return recipes, nil
}

func (s *Service) applyPlan(
	ctx context.Context,
	prev, next *kitchen.Plan,
	recipes map[uuid.UUID]*kitchen.Recipe,
	recorder *shared.EventRecorder,
) (reconcile.LedgerResult, error) {
	out := reconcile.PlanTransitions(prev, next, recipes)
	if n := len(out.MissingRecipes); n > 0 {
		s.metrics.ReferencesSkipped("recipe", n)
		s.logger.Warn("Skipped plan entries with missing recipes", zap.String("owner", next.Owner), zap.Int("skipped", n))
	}
	return s.adjustStock(ctx, next.Owner, "plan", next.ID, out.Deltas, recorder)
}

func (s *Service) afterStockChange(source string, ledger reconcile.LedgerResult) {
	if len(ledger.Updated) > 0 {
		s.metrics.StockAdjusted(source, len(ledger.Updated))
	}
	if n := len(ledger.Skipped); n > 0 {
		s.metrics.ReferencesSkipped("item", n)
	}
}
