// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/domain/kitchen"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ListAssertions provides shopping-list assertion helpers
type ListAssertions struct {
	t *testing.T
}

// NewListAssertions creates a new list assertions helper
func NewListAssertions(t *testing.T) *ListAssertions {
	return &ListAssertions{t: t}
}

// Decimal asserts numeric equality regardless of exponent ("7" == "7.00")
func (la *ListAssertions) Decimal(want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	la.t.Helper()
	if Dec(want).Equal(got) {
		return true
	}
	return assert.Fail(la.t, fmt.Sprintf("expected %s, got %s", want, got.String()), msgAndArgs...)
}

// MandatoryLine asserts the item has a mandatory line with the amounts
func (la *ListAssertions) MandatoryLine(list *kitchen.ShoppingList, itemID uuid.UUID, amount, total string) *kitchen.ShoppingListLine {
	la.t.Helper()
	i := list.MandatoryIndex(itemID)
	require.GreaterOrEqual(la.t, i, 0, "item %s should be mandatory", itemID)
	assert.Equal(la.t, -1, list.OptionalIndex(itemID), "item %s must not also be optional", itemID)
	line := list.Mandatory[i]
	la.Decimal(amount, line.Amount)
	la.Decimal(total, line.TotalAmount)
	return line
}

// OptionalLine asserts the item has an optional line with the amounts
func (la *ListAssertions) OptionalLine(list *kitchen.ShoppingList, itemID uuid.UUID, amount, total string) *kitchen.ShoppingListLine {
	la.t.Helper()
	i := list.OptionalIndex(itemID)
	require.GreaterOrEqual(la.t, i, 0, "item %s should be optional", itemID)
	assert.Equal(la.t, -1, list.MandatoryIndex(itemID), "item %s must not also be mandatory", itemID)
	line := list.Optional[i]
	la.Decimal(amount, line.Amount)
	la.Decimal(total, line.TotalAmount)
	return line
}

// Partitioned asserts every item appears exactly once across partitions
func (la *ListAssertions) Partitioned(list *kitchen.ShoppingList) {
	la.t.Helper()
	assert.NoError(la.t, list.Validate())
}
