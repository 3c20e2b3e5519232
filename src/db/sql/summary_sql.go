package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExpenseRecord is the slice of an expense the advice prompts are built from.
type ExpenseRecord struct {
	Amount       decimal.Decimal
	ExpenseDate  time.Time
	CategoryName string
}

// GetRecentExpenses returns the user's expenses from the last three months,
// newest first, with category names resolved.
func GetRecentExpenses(ctx context.Context, pool *pgxpool.Pool, userID int) ([]ExpenseRecord, error) {
	rows, err := pool.Query(ctx, `
		SELECT e.amount, e.expense_date, c.name
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1 AND e.expense_date >= CURRENT_DATE - INTERVAL '3 months'
		ORDER BY e.expense_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExpenseRecord
	for rows.Next() {
		var rec ExpenseRecord
		if err := rows.Scan(&rec.Amount, &rec.ExpenseDate, &rec.CategoryName); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
