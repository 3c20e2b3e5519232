package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack-server/src/models"
)

// backfillBudgetSpent sums the expenses already recorded for the
// (user, category, month) key. Only run when a budget row is first created;
// after that the aggregate is maintained incrementally by adjustBudget.
func backfillBudgetSpent(ctx context.Context, tx pgx.Tx, userID, categoryID int, monthYear string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND category_id = $2 AND to_char(expense_date, 'YYYY-MM') = $3
	`, userID, categoryID, monthYear).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to backfill budget spent: %w", err)
	}
	return total, nil
}

// CreateBudget inserts a budget with a backfilled current_spent. Re-creating
// an existing (user, category, month) key only replaces the monthly limit;
// the maintained aggregate is left untouched.
func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	spent, err := backfillBudgetSpent(ctx, tx, budget.UserID, budget.CategoryID, budget.MonthYear)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO budgets (user_id, category_id, monthly_limit, current_spent, month_year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category_id, month_year)
		DO UPDATE SET monthly_limit = EXCLUDED.monthly_limit, updated_at = NOW()
		RETURNING id, user_id, category_id, monthly_limit, current_spent, month_year, created_at, updated_at
	`
	var b models.Budget
	err = tx.QueryRow(ctx, query,
		budget.UserID, budget.CategoryID, budget.MonthlyLimit, spent, budget.MonthYear).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthlyLimit, &b.CurrentSpent, &b.MonthYear, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) (*models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.monthly_limit, b.current_spent, b.month_year, b.created_at, b.updated_at,
		       c.name, c.color, c.icon
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.user_id = $2
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budgetID, userID).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.MonthlyLimit, &b.CurrentSpent, &b.MonthYear, &b.CreatedAt, &b.UpdatedAt,
		&b.CategoryName, &b.CategoryColor, &b.CategoryIcon,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int, monthYear string) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.monthly_limit, b.current_spent, b.month_year, b.created_at, b.updated_at,
		       c.name, c.color, c.icon
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
	`
	args := []interface{}{userID}
	if monthYear != "" {
		args = append(args, monthYear)
		query += fmt.Sprintf(" AND b.month_year = $%d", len(args))
	}
	query += " ORDER BY b.month_year DESC, c.name ASC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthlyLimit, &b.CurrentSpent, &b.MonthYear, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryName, &b.CategoryColor, &b.CategoryIcon)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, monthly_limit = $2, month_year = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, category_id, monthly_limit, current_spent, month_year, created_at, updated_at
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query,
		budget.CategoryID, budget.MonthlyLimit, budget.MonthYear, budget.ID, budget.UserID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthlyLimit, &b.CurrentSpent, &b.MonthYear, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return &b, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func GetBudgetOverview(ctx context.Context, pool *pgxpool.Pool, userID int, monthYear string) ([]models.BudgetOverviewEntry, *models.BudgetSummary, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.monthly_limit, b.current_spent, b.month_year, b.created_at, b.updated_at,
		       c.name, c.color, c.icon,
		       CASE WHEN b.monthly_limit > 0 THEN (b.current_spent / b.monthly_limit) * 100 ELSE 0 END AS usage_percentage,
		       (b.monthly_limit - b.current_spent) AS remaining_amount
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1 AND b.month_year = $2
		ORDER BY usage_percentage DESC
	`
	rows, err := pool.Query(ctx, query, userID, monthYear)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var entries []models.BudgetOverviewEntry
	for rows.Next() {
		var e models.BudgetOverviewEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.MonthlyLimit, &e.CurrentSpent, &e.MonthYear, &e.CreatedAt, &e.UpdatedAt,
			&e.CategoryName, &e.CategoryColor, &e.CategoryIcon,
			&e.UsagePercentage, &e.RemainingAmount)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var summary models.BudgetSummary
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(monthly_limit), 0),
		       COALESCE(SUM(current_spent), 0),
		       COALESCE(SUM(monthly_limit - current_spent), 0),
		       COUNT(*) FILTER (WHERE current_spent > monthly_limit)
		FROM budgets
		WHERE user_id = $1 AND month_year = $2
	`, userID, monthYear).Scan(&summary.TotalBudgets, &summary.TotalBudget, &summary.TotalSpent, &summary.TotalRemaining, &summary.ExceededBudgets)
	if err != nil {
		return nil, nil, err
	}

	return entries, &summary, nil
}

// GetCategoriesWithoutBudget lists global categories that have no budget row
// for the user in the given month.
func GetCategoriesWithoutBudget(ctx context.Context, pool *pgxpool.Pool, userID int, monthYear string) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.color, c.icon, c.created_at
		FROM categories c
		WHERE c.id NOT IN (
			SELECT category_id FROM budgets WHERE user_id = $1 AND month_year = $2
		)
		ORDER BY c.name
	`
	rows, err := pool.Query(ctx, query, userID, monthYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
