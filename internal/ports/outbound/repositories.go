// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
)

// ErrNotFound is returned (wrapped) by repositories when a record is missing
var ErrNotFound = errors.New("record not found")

// ItemRepository persists pantry items
type ItemRepository interface {
	// GetByIDs returns the items that exist; missing ids are absent from the map
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*kitchen.Item, error)
	// UpsertBatch writes all items as one statement
	UpsertBatch(ctx context.Context, items []*kitchen.Item) error

	Create(ctx context.Context, item *kitchen.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Item, error)
	Search(ctx context.Context, owner, query string, limit int) ([]*kitchen.Item, error)
}

// RecipeRepository persists recipes
type RecipeRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*kitchen.Recipe, error)

	Create(ctx context.Context, recipe *kitchen.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error)
	FindByOwner(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Recipe, int, error)
}

// PlanRepository persists daily meal plans
type PlanRepository interface {
	// GetOpenEntries returns the entries of every plan not yet closed
	GetOpenEntries(ctx context.Context, owner string) ([]kitchen.PlanEntry, error)

	FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Plan, error)
	FindByDate(ctx context.Context, owner string, date time.Time) (*kitchen.Plan, error)
	FindBetween(ctx context.Context, owner string, from, to time.Time) ([]*kitchen.Plan, error)
	FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.Plan, int, error)
	Upsert(ctx context.Context, plan *kitchen.Plan) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// ShoppingListRepository persists shopping lists
type ShoppingListRepository interface {
	// GetOpen returns the open list, or nil when there is none
	GetOpen(ctx context.Context, owner string) (*kitchen.ShoppingList, error)
	Upsert(ctx context.Context, list *kitchen.ShoppingList) error
	Remove(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*kitchen.ShoppingList, error)
	FindClosed(ctx context.Context, owner string, offset, limit int) ([]*kitchen.ShoppingList, int, error)
}

// MustBuyRepository persists must-buy flags
type MustBuyRepository interface {
	GetAll(ctx context.Context, owner string) ([]kitchen.MustBuyFlag, error)
	Add(ctx context.Context, flag *kitchen.MustBuyFlag) error
	Clear(ctx context.Context, owner string) error
}

// Transactor runs fn inside one database transaction. Repositories called
// with the context passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
