// Package kitchen provides the application layer for pantry management.
// It implements the use cases defined in the inbound ports and owns the
// per-owner locking and transaction boundaries around the reconcile engine.
package kitchen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/pantryhq/pantry/internal/domain/reconcile"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	apperrors "github.com/pantryhq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// Config holds the tunables of the kitchen use cases
type Config struct {
	PageSize     int
	UpcomingDays int
	SearchLimit  int
	LockWait     time.Duration
}

// Dependencies groups the outbound ports used by the service
type Dependencies struct {
	Items      outbound.ItemRepository
	Recipes    outbound.RecipeRepository
	Plans      outbound.PlanRepository
	Lists      outbound.ShoppingListRepository
	MustBuy    outbound.MustBuyRepository
	Transactor outbound.Transactor
	Locker     outbound.UserLocker
	Events     shared.EventDispatcher
	Metrics    outbound.KitchenMetrics
}

// Option configures the service
type Option func(*Service)

// WithClock overrides the service clock, which also stamps generated lists
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service implements inbound.KitchenService
type Service struct {
	items   outbound.ItemRepository
	recipes outbound.RecipeRepository
	plans   outbound.PlanRepository
	lists   outbound.ShoppingListRepository
	mustBuy outbound.MustBuyRepository
	tx      outbound.Transactor
	locker  outbound.UserLocker
	events  shared.EventDispatcher
	metrics outbound.KitchenMetrics
	engine  *reconcile.Engine
	cfg     Config
	now     func() time.Time
	logger  *zap.Logger
}

// NewService creates a new kitchen service
func NewService(deps Dependencies, cfg Config, logger *zap.Logger, opts ...Option) inbound.KitchenService {
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	if cfg.UpcomingDays < 1 {
		cfg.UpcomingDays = 7
	}
	if cfg.SearchLimit < 1 {
		cfg.SearchLimit = 25
	}
	if cfg.LockWait <= 0 {
		cfg.LockWait = 10 * time.Second
	}
	if deps.Metrics == nil {
		deps.Metrics = outbound.NopMetrics{}
	}

	s := &Service{
		items:   deps.Items,
		recipes: deps.Recipes,
		plans:   deps.Plans,
		lists:   deps.Lists,
		mustBuy: deps.MustBuy,
		tx:      deps.Transactor,
		locker:  deps.Locker,
		events:  deps.Events,
		metrics: deps.Metrics,
		cfg:     cfg,
		now:     time.Now,
		logger:  logger.Named("kitchen-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = reconcile.NewEngine(reconcile.WithClock(s.now))
	return s
}

// withOwnerLock runs fn while holding the owner's write lock
func (s *Service) withOwnerLock(ctx context.Context, owner string, fn func() error) error {
	start := time.Now()
	lockCtx, cancel := context.WithTimeout(ctx, s.cfg.LockWait)
	release, err := s.locker.Acquire(lockCtx, owner)
	cancel()
	s.metrics.LockWait(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, outbound.ErrLockTimeout) {
			s.logger.Warn("Timed out waiting for owner lock", zap.String("owner", owner))
			return apperrors.NewResourceLockedError("pantry")
		}
		return apperrors.Wrap(err, "failed to acquire owner lock")
	}
	defer release()

	return fn()
}

// dispatch publishes events recorded during a committed use case
func (s *Service) dispatch(ctx context.Context, recorder *shared.EventRecorder) {
	if s.events == nil {
		recorder.Drain()
		return
	}
	for _, event := range recorder.Drain() {
		if err := s.events.Dispatch(ctx, event); err != nil {
			s.logger.Error("Failed to dispatch event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
}

// loadOwnedItems loads items by id, dropping any that belong to another owner
func (s *Service) loadOwnedItems(ctx context.Context, owner string, ids []uuid.UUID) (map[uuid.UUID]*kitchen.Item, error) {
	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load items", err)
	}
	for id, item := range items {
		if item.Owner != owner {
			delete(items, id)
		}
	}
	return items, nil
}

// loadOwnedRecipes loads recipes by id, dropping any that belong to another owner
func (s *Service) loadOwnedRecipes(ctx context.Context, owner string, ids []uuid.UUID) (map[uuid.UUID]*kitchen.Recipe, error) {
	recipes, err := s.recipes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load recipes", err)
	}
	byID := make(map[uuid.UUID]*kitchen.Recipe, len(recipes))
	for _, r := range recipes {
		if r.Owner == owner {
			byID[r.ID] = r
		}
	}
	return byID, nil
}

// adjustStock applies ledger deltas to the owner's items and persists the
// touched items as one batch
func (s *Service) adjustStock(
	ctx context.Context,
	owner, source string,
	sourceID uuid.UUID,
	deltas []reconcile.QuantityDelta,
	recorder *shared.EventRecorder,
) (reconcile.LedgerResult, error) {
	if len(deltas) == 0 {
		return reconcile.LedgerResult{}, nil
	}

	items, err := s.loadOwnedItems(ctx, owner, reconcile.DeltaItemIDs(deltas))
	if err != nil {
		return reconcile.LedgerResult{}, err
	}

	result := reconcile.ApplyDeltas(items, deltas)
	if len(result.Skipped) > 0 {
		s.logger.Warn("Skipped stock adjustments for unknown items",
			zap.String("owner", owner),
			zap.String("source", source),
			zap.Int("skipped", len(result.Skipped)),
		)
	}
	if len(result.Updated) == 0 {
		return result, nil
	}

	if err := s.items.UpsertBatch(ctx, result.Updated); err != nil {
		return result, apperrors.NewDatabaseError("update item quantities", err)
	}

	ids := make([]uuid.UUID, len(result.Updated))
	for i, item := range result.Updated {
		ids[i] = item.ID
	}
	recorder.Record(kitchen.StockAdjustedEvent{
		Owner:      owner,
		Source:     source,
		SourceID:   sourceID,
		ItemIDs:    ids,
		Skipped:    len(result.Skipped),
		AdjustedAt: s.now(),
	})
	return result, nil
}

// offset converts a 1-based page number into a row offset
func (s *Service) offset(page int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * s.cfg.PageSize
}

// repoError maps a repository error onto notFound or a database error
func repoError(err error, notFound *apperrors.AppError, operation string) error {
	if errors.Is(err, outbound.ErrNotFound) {
		return notFound
	}
	return apperrors.NewDatabaseError(operation, err)
}

// domainError maps entity validation failures onto application errors
func domainError(err error) error {
	if errors.Is(err, kitchen.ErrListClosed) {
		return apperrors.NewListClosedError("")
	}
	return apperrors.NewValidationError(err.Error())
}

// txError keeps application errors raised inside a transaction and wraps
// anything else as a database error
func txError(err error, operation string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.NewDatabaseError(operation, err)
}
