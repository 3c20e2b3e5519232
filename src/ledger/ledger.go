// Package ledger holds the budget reconciliation rules: which budget rows an
// expense lifecycle event touches, and by how much. The sql layer applies the
// resulting adjustments inside a single transaction.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack-server/src/models"
)

// MonthKey truncates a date to its YYYY-MM budget period.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Adjustment is a signed delta against one budget row, keyed by
// (category, month) within a user. A key with no budget row is a no-op.
type Adjustment struct {
	CategoryID int
	MonthKey   string
	Delta      decimal.Decimal
}

// CreateAdjustment credits a new expense to its budget period.
func CreateAdjustment(categoryID int, amount decimal.Decimal, expenseDate time.Time) Adjustment {
	return Adjustment{CategoryID: categoryID, MonthKey: MonthKey(expenseDate), Delta: amount}
}

// DeleteAdjustment removes a deleted expense from its budget period.
func DeleteAdjustment(categoryID int, amount decimal.Decimal, expenseDate time.Time) Adjustment {
	return Adjustment{CategoryID: categoryID, MonthKey: MonthKey(expenseDate), Delta: amount.Neg()}
}

// EditAdjustments computes the budget deltas for an expense edit. When the
// expense stays in the same category and month, a single delta of
// (new - old) is applied. Otherwise the full old amount leaves the old key
// and the full new amount lands on the new key.
func EditAdjustments(oldCategoryID int, oldAmount decimal.Decimal, oldDate time.Time,
	newCategoryID int, newAmount decimal.Decimal, newDate time.Time) []Adjustment {

	oldKey := MonthKey(oldDate)
	newKey := MonthKey(newDate)

	if oldKey == newKey && oldCategoryID == newCategoryID {
		return []Adjustment{
			{CategoryID: newCategoryID, MonthKey: newKey, Delta: newAmount.Sub(oldAmount)},
		}
	}
	return []Adjustment{
		{CategoryID: oldCategoryID, MonthKey: oldKey, Delta: oldAmount.Neg()},
		{CategoryID: newCategoryID, MonthKey: newKey, Delta: newAmount},
	}
}

// NextGoalStatus is the only automatic goal transition: a contribution that
// reaches the target completes the goal, anything short of it keeps the goal
// active. Paused goals are caller-driven and never set here.
func NextGoalStatus(currentAmount, targetAmount decimal.Decimal) string {
	if currentAmount.GreaterThanOrEqual(targetAmount) {
		return models.GoalStatusCompleted
	}
	return models.GoalStatusActive
}
