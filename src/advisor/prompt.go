package advisor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

// FinancialSummary aggregates the last three months of spending into the
// shape the advice prompts are written against.
type FinancialSummary struct {
	TotalSpent        decimal.Decimal
	CategoryBreakdown map[string]decimal.Decimal
	MonthlySpending   map[string]decimal.Decimal
	ActiveGoals       int
	CurrentBudgets    int
}

func Summarize(expenses []db.ExpenseRecord, goals []models.Goal, budgets []models.Budget) FinancialSummary {
	summary := FinancialSummary{
		TotalSpent:        decimal.Zero,
		CategoryBreakdown: make(map[string]decimal.Decimal),
		MonthlySpending:   make(map[string]decimal.Decimal),
		ActiveGoals:       len(goals),
		CurrentBudgets:    len(budgets),
	}
	for _, e := range expenses {
		month := e.ExpenseDate.Format("2006-01")
		summary.TotalSpent = summary.TotalSpent.Add(e.Amount)
		summary.CategoryBreakdown[e.CategoryName] = summary.CategoryBreakdown[e.CategoryName].Add(e.Amount)
		summary.MonthlySpending[month] = summary.MonthlySpending[month].Add(e.Amount)
	}
	return summary
}

func formatBreakdown(m map[string]decimal.Decimal) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "- %s: $%s\n", k, m[k].StringFixed(2))
	}
	return sb.String()
}

// topCategories lists the n largest spending categories, largest first.
func topCategories(m map[string]decimal.Decimal, n int) string {
	type entry struct {
		name   string
		amount decimal.Decimal
	}
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount.Equal(entries[j].amount) {
			return entries[i].name < entries[j].name
		}
		return entries[i].amount.GreaterThan(entries[j].amount)
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s ($%s)", e.name, e.amount.StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

func BuildRecommendationPrompt(summary FinancialSummary) string {
	return fmt.Sprintf(`Based on the following financial data, provide personalized budgeting recommendations:

Total Spent (Last 3 months): $%s

Category Breakdown:
%s
Monthly Spending Pattern:
%s
Active Goals: %d
Current Budgets: %d

Please provide 3-5 actionable budgeting recommendations to help improve financial health.
Keep recommendations practical and specific.`,
		summary.TotalSpent.StringFixed(2),
		formatBreakdown(summary.CategoryBreakdown),
		formatBreakdown(summary.MonthlySpending),
		summary.ActiveGoals,
		summary.CurrentBudgets)
}

func BuildSpendingInsightsPrompt(summary FinancialSummary) string {
	return fmt.Sprintf(`Analyze the following spending data and provide insights:

Total Spent (Last 3 months): $%s

Category Breakdown:
%s
Monthly Spending Pattern:
%s
Provide insights about:
1. Spending patterns and trends
2. Areas where spending could be optimized
3. Notable changes in spending behavior
4. Recommendations for better financial management`,
		summary.TotalSpent.StringFixed(2),
		formatBreakdown(summary.CategoryBreakdown),
		formatBreakdown(summary.MonthlySpending))
}

func BuildGoalAdvicePrompt(summary FinancialSummary, goal *models.Goal) string {
	targetDate := "Not set"
	if goal.TargetDate != nil {
		targetDate = goal.TargetDate.Format(time.DateOnly)
	}
	description := goal.Description
	if description == "" {
		description = "No description"
	}
	monthlyAverage := summary.TotalSpent.Div(decimal.NewFromInt(3))

	return fmt.Sprintf(`Provide advice for achieving the following financial goal:

Goal: %s
Target Amount: $%s
Current Amount: $%s
Target Date: %s
Description: %s

Current Financial Context:
- Monthly Average Spending: $%s
- Top Spending Categories: %s

Provide specific advice on:
1. How much to save monthly to reach this goal
2. Areas to cut spending to free up money for this goal
3. Timeline adjustments if needed
4. Strategies to stay motivated`,
		goal.Title,
		goal.TargetAmount.StringFixed(2),
		goal.CurrentAmount.StringFixed(2),
		targetDate,
		description,
		monthlyAverage.StringFixed(2),
		topCategories(summary.CategoryBreakdown, 3))
}
