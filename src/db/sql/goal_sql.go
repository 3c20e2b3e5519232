package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack-server/src/ledger"
	"fintrack-server/src/models"
)

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO financial_goals (user_id, title, target_amount, current_amount, target_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, target_amount, current_amount, target_date, description, status, created_at, updated_at
	`
	var g models.Goal
	err := pool.QueryRow(ctx, query,
		goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Description).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &g, nil
}

func GetGoalByID(ctx context.Context, pool *pgxpool.Pool, userID, goalID int) (*models.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, target_date, description, status, created_at, updated_at
		FROM financial_goals
		WHERE id = $1 AND user_id = $2
	`
	var g models.Goal
	err := pool.QueryRow(ctx, query, goalID, userID).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func GetAllGoals(ctx context.Context, pool *pgxpool.Pool, userID int, status string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, target_date, description, status, created_at, updated_at
		FROM financial_goals
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoal is a full-record overwrite. It deliberately does not reconcile
// status against the amounts; callers can park a goal as paused or reopen a
// completed one by lowering current_amount.
func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.Goal) (*models.Goal, error) {
	query := `
		UPDATE financial_goals
		SET title = $1, target_amount = $2, current_amount = $3, target_date = $4, description = $5, status = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING id, user_id, title, target_amount, current_amount, target_date, description, status, created_at, updated_at
	`
	var g models.Goal
	err := pool.QueryRow(ctx, query,
		goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Description, goal.Status, goal.ID, goal.UserID).
		Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &g, nil
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddGoalProgress applies a contribution and the threshold transition in one
// transaction. The row lock serializes concurrent contributions to the same
// goal, so none are lost.
func AddGoalProgress(ctx context.Context, pool *pgxpool.Pool, userID, goalID int, amount decimal.Decimal) (decimal.Decimal, string, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, "", err
	}
	defer tx.Rollback(ctx)

	var current, target decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT current_amount, target_amount
		FROM financial_goals
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, goalID, userID).Scan(&current, &target)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", ErrNotFound
		}
		return decimal.Zero, "", fmt.Errorf("failed to read goal: %w", err)
	}

	newAmount := current.Add(amount)
	newStatus := ledger.NextGoalStatus(newAmount, target)

	_, err = tx.Exec(ctx, `
		UPDATE financial_goals
		SET current_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, newAmount, newStatus, goalID, userID)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("failed to update goal progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, "", err
	}
	return newAmount, newStatus, nil
}

func GetGoalStats(ctx context.Context, pool *pgxpool.Pool, userID int) (*models.GoalStats, []models.Goal, error) {
	var stats models.GoalStats
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'paused'),
		       COALESCE(SUM(target_amount), 0),
		       COALESCE(SUM(current_amount), 0)
		FROM financial_goals
		WHERE user_id = $1
	`, userID).Scan(&stats.TotalGoals, &stats.ActiveGoals, &stats.CompletedGoals, &stats.PausedGoals, &stats.TotalTargetAmount, &stats.TotalCurrentAmount)
	if err != nil {
		return nil, nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT id, user_id, title, target_amount, current_amount, target_date, description, status, created_at, updated_at
		FROM financial_goals
		WHERE user_id = $1 AND status = 'active' AND target_date IS NOT NULL AND target_date >= CURRENT_DATE
		ORDER BY target_date ASC
		LIMIT 5
	`, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var upcoming []models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.Description, &g.Status, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, nil, err
		}
		upcoming = append(upcoming, g)
	}
	return &stats, upcoming, rows.Err()
}
