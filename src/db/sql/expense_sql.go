package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack-server/src/ledger"
	"fintrack-server/src/models"
)

// adjustBudget is the single owned mutation of the current_spent aggregate.
// Every expense lifecycle path goes through it. A missing budget row for the
// (user, category, month) key matches zero rows and is not an error.
func adjustBudget(ctx context.Context, tx pgx.Tx, userID int, adj ledger.Adjustment) (int64, error) {
	query := `
		UPDATE budgets
		SET current_spent = current_spent + $1, updated_at = NOW()
		WHERE user_id = $2 AND category_id = $3 AND month_year = $4
	`
	cmd, err := tx.Exec(ctx, query, adj.Delta, userID, adj.CategoryID, adj.MonthKey)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust budget: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// CreateExpense inserts the expense and credits its budget period in one
// transaction, so the ledger and the aggregate cannot diverge on failure.
func CreateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO expenses (user_id, category_id, amount, description, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category_id, amount, description, expense_date, created_at, updated_at
	`
	var e models.Expense
	err = tx.QueryRow(ctx, query,
		expense.UserID, expense.CategoryID, expense.Amount, expense.Description, expense.ExpenseDate).
		Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	adj := ledger.CreateAdjustment(e.CategoryID, e.Amount, e.ExpenseDate)
	if _, err := adjustBudget(ctx, tx, e.UserID, adj); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense rewrites the expense and moves its amount between budget
// aggregates. The prior row is read under FOR UPDATE so concurrent edits of
// the same expense serialize instead of double-applying deltas.
func UpdateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var (
		oldCategoryID int
		oldAmount     decimal.Decimal
		oldDate       time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT category_id, amount, expense_date
		FROM expenses
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, expense.ID, expense.UserID).Scan(&oldCategoryID, &oldAmount, &oldDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read expense: %w", err)
	}

	query := `
		UPDATE expenses
		SET category_id = $1, amount = $2, description = $3, expense_date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, category_id, amount, description, expense_date, created_at, updated_at
	`
	var e models.Expense
	err = tx.QueryRow(ctx, query,
		expense.CategoryID, expense.Amount, expense.Description, expense.ExpenseDate, expense.ID, expense.UserID).
		Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	adjustments := ledger.EditAdjustments(oldCategoryID, oldAmount, oldDate, e.CategoryID, e.Amount, e.ExpenseDate)
	for _, adj := range adjustments {
		if _, err := adjustBudget(ctx, tx, e.UserID, adj); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes the expense and debits its budget period in one
// transaction. Deleting an already-deleted id reports ErrNotFound.
func DeleteExpense(ctx context.Context, pool *pgxpool.Pool, userID, expenseID int) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var (
		categoryID int
		amount     decimal.Decimal
		date       time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT category_id, amount, expense_date
		FROM expenses
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, expenseID, userID).Scan(&categoryID, &amount, &date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read expense: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	adj := ledger.DeleteAdjustment(categoryID, amount, date)
	if _, err := adjustBudget(ctx, tx, userID, adj); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func GetExpenseByID(ctx context.Context, pool *pgxpool.Pool, userID, expenseID int) (*models.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.category_id, e.amount, e.description, e.expense_date, e.created_at, e.updated_at,
		       c.name, c.color, c.icon
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = $1 AND e.user_id = $2
	`
	var e models.Expense
	err := pool.QueryRow(ctx, query, expenseID, userID).Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt,
		&e.CategoryName, &e.CategoryColor, &e.CategoryIcon,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID int
	Limit      int
	Offset     int
}

func GetExpenses(ctx context.Context, pool *pgxpool.Pool, userID int, filter ExpenseFilter) ([]models.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.category_id, e.amount, e.description, e.expense_date, e.created_at, e.updated_at,
		       c.name, c.color, c.icon
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1
	`
	args := []interface{}{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND e.expense_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND e.expense_date <= $%d", len(args))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}

	query += " ORDER BY e.expense_date DESC, e.created_at DESC"

	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt,
			&e.CategoryName, &e.CategoryColor, &e.CategoryIcon)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func GetExpenseStats(ctx context.Context, pool *pgxpool.Pool, userID int, since time.Time) (*models.ExpenseStats, []models.CategoryStat, error) {
	var stats models.ExpenseStats
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(AVG(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2
	`, userID, since).Scan(&stats.TotalExpenses, &stats.TotalAmount, &stats.AverageAmount)
	if err != nil {
		return nil, nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT c.name, c.color, COUNT(e.id), COALESCE(SUM(e.amount), 0) AS total_amount
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1 AND e.expense_date >= $2
		GROUP BY c.id, c.name, c.color
		ORDER BY total_amount DESC
	`, userID, since)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var breakdown []models.CategoryStat
	for rows.Next() {
		var cs models.CategoryStat
		if err := rows.Scan(&cs.CategoryName, &cs.CategoryColor, &cs.ExpenseCount, &cs.TotalAmount); err != nil {
			return nil, nil, err
		}
		breakdown = append(breakdown, cs)
	}
	return &stats, breakdown, rows.Err()
}
