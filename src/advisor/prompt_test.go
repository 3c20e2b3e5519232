package advisor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleExpenses() []db.ExpenseRecord {
	return []db.ExpenseRecord{
		{Amount: dec("120.50"), ExpenseDate: day("2024-03-05"), CategoryName: "Groceries"},
		{Amount: dec("79.50"), ExpenseDate: day("2024-03-20"), CategoryName: "Groceries"},
		{Amount: dec("45.00"), ExpenseDate: day("2024-04-02"), CategoryName: "Transport"},
		{Amount: dec("300.00"), ExpenseDate: day("2024-04-15"), CategoryName: "Rent"},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleExpenses(),
		[]models.Goal{{Title: "Emergency fund"}},
		[]models.Budget{{}, {}})

	assert.True(t, summary.TotalSpent.Equal(dec("545")))
	assert.True(t, summary.CategoryBreakdown["Groceries"].Equal(dec("200")))
	assert.True(t, summary.CategoryBreakdown["Transport"].Equal(dec("45")))
	assert.True(t, summary.CategoryBreakdown["Rent"].Equal(dec("300")))
	assert.True(t, summary.MonthlySpending["2024-03"].Equal(dec("200")))
	assert.True(t, summary.MonthlySpending["2024-04"].Equal(dec("345")))
	assert.Equal(t, 1, summary.ActiveGoals)
	assert.Equal(t, 2, summary.CurrentBudgets)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil, nil)
	assert.True(t, summary.TotalSpent.IsZero())
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Empty(t, summary.MonthlySpending)
	assert.Zero(t, summary.ActiveGoals)
	assert.Zero(t, summary.CurrentBudgets)
}

func TestBuildRecommendationPrompt(t *testing.T) {
	summary := Summarize(sampleExpenses(), []models.Goal{{}}, []models.Budget{{}})
	prompt := BuildRecommendationPrompt(summary)

	assert.Contains(t, prompt, "Total Spent (Last 3 months): $545.00")
	assert.Contains(t, prompt, "- Groceries: $200.00")
	assert.Contains(t, prompt, "- Rent: $300.00")
	assert.Contains(t, prompt, "- 2024-04: $345.00")
	assert.Contains(t, prompt, "Active Goals: 1")
	assert.Contains(t, prompt, "Current Budgets: 1")
	assert.Contains(t, prompt, "budgeting recommendations")
}

func TestBuildSpendingInsightsPrompt(t *testing.T) {
	summary := Summarize(sampleExpenses(), nil, nil)
	prompt := BuildSpendingInsightsPrompt(summary)

	assert.Contains(t, prompt, "Total Spent (Last 3 months): $545.00")
	assert.Contains(t, prompt, "Spending patterns and trends")
	assert.Contains(t, prompt, "- Transport: $45.00")
}

func TestBuildGoalAdvicePrompt(t *testing.T) {
	summary := Summarize(sampleExpenses(), nil, nil)
	targetDate := day("2025-06-01")
	goal := &models.Goal{
		Title:         "New laptop",
		TargetAmount:  dec("1500"),
		CurrentAmount: dec("400"),
		TargetDate:    &targetDate,
		Description:   "Replace aging machine",
	}

	prompt := BuildGoalAdvicePrompt(summary, goal)

	assert.Contains(t, prompt, "Goal: New laptop")
	assert.Contains(t, prompt, "Target Amount: $1500.00")
	assert.Contains(t, prompt, "Current Amount: $400.00")
	assert.Contains(t, prompt, "Target Date: 2025-06-01")
	assert.Contains(t, prompt, "Description: Replace aging machine")
	// 545 / 3
	assert.Contains(t, prompt, "Monthly Average Spending: $181.67")
	// top 3 categories, largest first
	assert.Contains(t, prompt, "Rent ($300.00), Groceries ($200.00), Transport ($45.00)")
}

func TestBuildGoalAdvicePrompt_Defaults(t *testing.T) {
	goal := &models.Goal{
		Title:         "Vacation",
		TargetAmount:  dec("2000"),
		CurrentAmount: dec("0"),
	}

	prompt := BuildGoalAdvicePrompt(Summarize(nil, nil, nil), goal)

	assert.Contains(t, prompt, "Target Date: Not set")
	assert.Contains(t, prompt, "Description: No description")
}

func TestTopCategories_Truncates(t *testing.T) {
	m := map[string]decimal.Decimal{
		"A": dec("10"),
		"B": dec("40"),
		"C": dec("30"),
		"D": dec("20"),
	}
	assert.Equal(t, "B ($40.00), C ($30.00)", topCategories(m, 2))
}
