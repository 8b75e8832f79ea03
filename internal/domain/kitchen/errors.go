package kitchen

import "errors"

// Domain errors for kitchen operations

var (
	// Entity validation errors
	ErrOwnerRequired      = errors.New("owner is required")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name must not exceed 200 characters")
	ErrNegativeQuantity   = errors.New("quantity must not be negative")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrAmountExceedsTotal = errors.New("amount must not exceed total amount")
	ErrMissingItem        = errors.New("item id is required")
	ErrMissingRecipe      = errors.New("recipe id is required")
	ErrPlanDateRequired   = errors.New("plan date is required")

	// Consistency errors
	ErrDuplicateLine  = errors.New("item appears more than once in the shopping list")
	ErrDuplicateEntry = errors.New("plan entry appears more than once in the plan")

	// State errors
	ErrListClosed = errors.New("shopping list is closed")
	ErrNotOwner   = errors.New("resource belongs to another owner")
)
