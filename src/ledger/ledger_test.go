package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(date("2024-03-05")))
	assert.Equal(t, "2024-03", MonthKey(date("2024-03-31")))
	assert.Equal(t, "2024-12", MonthKey(date("2024-12-01")))
	assert.Equal(t, "2025-01", MonthKey(date("2025-01-01")))
}

func TestCreateAdjustment(t *testing.T) {
	adj := CreateAdjustment(2, dec("120"), date("2024-03-05"))
	assert.Equal(t, 2, adj.CategoryID)
	assert.Equal(t, "2024-03", adj.MonthKey)
	assert.True(t, adj.Delta.Equal(dec("120")))
}

func TestDeleteAdjustment(t *testing.T) {
	adj := DeleteAdjustment(2, dec("120"), date("2024-03-05"))
	assert.Equal(t, 2, adj.CategoryID)
	assert.Equal(t, "2024-03", adj.MonthKey)
	assert.True(t, adj.Delta.Equal(dec("-120")))
}

func TestEditAdjustments_SameCategoryAndMonth(t *testing.T) {
	adjs := EditAdjustments(2, dec("120"), date("2024-03-05"), 2, dec("200"), date("2024-03-20"))
	require.Len(t, adjs, 1)
	assert.Equal(t, 2, adjs[0].CategoryID)
	assert.Equal(t, "2024-03", adjs[0].MonthKey)
	assert.True(t, adjs[0].Delta.Equal(dec("80")), "delta must be new minus old")
}

func TestEditAdjustments_AmountLowered(t *testing.T) {
	adjs := EditAdjustments(2, dec("200"), date("2024-03-05"), 2, dec("50"), date("2024-03-05"))
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Delta.Equal(dec("-150")))
}

func TestEditAdjustments_CategoryChanged(t *testing.T) {
	adjs := EditAdjustments(2, dec("120"), date("2024-03-05"), 7, dec("120"), date("2024-03-05"))
	require.Len(t, adjs, 2)

	assert.Equal(t, 2, adjs[0].CategoryID)
	assert.Equal(t, "2024-03", adjs[0].MonthKey)
	assert.True(t, adjs[0].Delta.Equal(dec("-120")), "full old amount leaves the old key")

	assert.Equal(t, 7, adjs[1].CategoryID)
	assert.Equal(t, "2024-03", adjs[1].MonthKey)
	assert.True(t, adjs[1].Delta.Equal(dec("120")), "full new amount lands on the new key")
}

func TestEditAdjustments_MonthChanged(t *testing.T) {
	adjs := EditAdjustments(2, dec("120"), date("2024-03-05"), 2, dec("150"), date("2024-04-02"))
	require.Len(t, adjs, 2)

	assert.Equal(t, "2024-03", adjs[0].MonthKey)
	assert.True(t, adjs[0].Delta.Equal(dec("-120")))

	assert.Equal(t, "2024-04", adjs[1].MonthKey)
	assert.True(t, adjs[1].Delta.Equal(dec("150")))
}

func TestEditAdjustments_ZeroDeltaEdit(t *testing.T) {
	// Editing only the description still flows through the reconciler; the
	// resulting delta is zero and harmless.
	adjs := EditAdjustments(2, dec("120"), date("2024-03-05"), 2, dec("120"), date("2024-03-05"))
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Delta.IsZero())
}

// budgetKey mirrors the (category, month) budget identity within a user.
type budgetKey struct {
	categoryID int
	monthKey   string
}

// applyAll replays adjustments against an in-memory aggregate the way the
// sql layer applies them to budget rows: unknown keys are ignored.
func applyAll(budgets map[budgetKey]decimal.Decimal, adjs ...Adjustment) {
	for _, adj := range adjs {
		key := budgetKey{adj.CategoryID, adj.MonthKey}
		if current, ok := budgets[key]; ok {
			budgets[key] = current.Add(adj.Delta)
		}
	}
}

func TestExpenseLifecycleReconciliation(t *testing.T) {
	// Budget (category=2, month=2024-03) starts at zero spent.
	budgets := map[budgetKey]decimal.Decimal{
		{2, "2024-03"}: decimal.Zero,
	}

	// Create expense of 120 on 2024-03-05.
	applyAll(budgets, CreateAdjustment(2, dec("120"), date("2024-03-05")))
	assert.True(t, budgets[budgetKey{2, "2024-03"}].Equal(dec("120")))

	// Edit amount to 200, same category and month.
	applyAll(budgets, EditAdjustments(2, dec("120"), date("2024-03-05"), 2, dec("200"), date("2024-03-05"))...)
	assert.True(t, budgets[budgetKey{2, "2024-03"}].Equal(dec("200")))

	// Delete the expense.
	applyAll(budgets, DeleteAdjustment(2, dec("200"), date("2024-03-05")))
	assert.True(t, budgets[budgetKey{2, "2024-03"}].IsZero())
}

func TestReconciliationSumsCreations(t *testing.T) {
	budgets := map[budgetKey]decimal.Decimal{
		{5, "2024-07"}: dec("33.10"), // backfilled at budget creation
	}
	for _, amount := range []string{"12.50", "7.99", "100", "0.01"} {
		applyAll(budgets, CreateAdjustment(5, dec(amount), date("2024-07-15")))
	}
	assert.True(t, budgets[budgetKey{5, "2024-07"}].Equal(dec("153.60")))
}

func TestReconciliationMovesAmountAcrossKeys(t *testing.T) {
	budgets := map[budgetKey]decimal.Decimal{
		{2, "2024-03"}: dec("300"),
		{7, "2024-04"}: dec("40"),
	}
	applyAll(budgets, EditAdjustments(2, dec("120"), date("2024-03-05"), 7, dec("90"), date("2024-04-01"))...)
	assert.True(t, budgets[budgetKey{2, "2024-03"}].Equal(dec("180")))
	assert.True(t, budgets[budgetKey{7, "2024-04"}].Equal(dec("130")))
}

func TestAdjustmentAgainstMissingBudgetIsNoop(t *testing.T) {
	budgets := map[budgetKey]decimal.Decimal{}
	applyAll(budgets, CreateAdjustment(9, dec("50"), date("2024-05-05")))
	assert.Empty(t, budgets)
}

func TestReconciliationMayGoNegative(t *testing.T) {
	// No floor clamp: out-of-order manipulation can push the aggregate
	// below zero.
	budgets := map[budgetKey]decimal.Decimal{
		{2, "2024-03"}: dec("10"),
	}
	applyAll(budgets, DeleteAdjustment(2, dec("25"), date("2024-03-08")))
	assert.True(t, budgets[budgetKey{2, "2024-03"}].Equal(dec("-15")))
}

func TestNextGoalStatus(t *testing.T) {
	assert.Equal(t, models.GoalStatusActive, NextGoalStatus(dec("999.99"), dec("1000")))
	assert.Equal(t, models.GoalStatusCompleted, NextGoalStatus(dec("1000"), dec("1000")))
	assert.Equal(t, models.GoalStatusCompleted, NextGoalStatus(dec("1050"), dec("1000")))
}

func TestGoalContributionThreshold(t *testing.T) {
	// Goal at 800 of 1000; contributing 250 crosses the target.
	current := dec("800")
	target := dec("1000")

	newAmount := current.Add(dec("250"))
	assert.True(t, newAmount.Equal(dec("1050")))
	assert.Equal(t, models.GoalStatusCompleted, NextGoalStatus(newAmount, target))

	// Contributing 100 instead stays short of the target.
	assert.Equal(t, models.GoalStatusActive, NextGoalStatus(current.Add(dec("100")), target))
}
