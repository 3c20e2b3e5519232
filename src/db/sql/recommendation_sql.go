package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

func CreateRecommendation(ctx context.Context, pool *pgxpool.Pool, userID int, text, recType string) (*models.Recommendation, error) {
	query := `
		INSERT INTO ai_recommendations (user_id, recommendation_text, recommendation_type)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, recommendation_text, recommendation_type, is_read, created_at
	`
	var rec models.Recommendation
	err := pool.QueryRow(ctx, query, userID, text, recType).
		Scan(&rec.ID, &rec.UserID, &rec.RecommendationText, &rec.RecommendationType, &rec.IsRead, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}
	return &rec, nil
}

type RecommendationFilter struct {
	Type       string
	UnreadOnly bool
	Limit      int
	Offset     int
}

func GetRecommendations(ctx context.Context, pool *pgxpool.Pool, userID int, filter RecommendationFilter) ([]models.Recommendation, error) {
	query := `
		SELECT id, user_id, recommendation_text, recommendation_type, is_read, created_at
		FROM ai_recommendations
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND recommendation_type = $%d", len(args))
	}
	if filter.UnreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit < 1 {
		limit = 10
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

	var recs []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.RecommendationText, &rec.RecommendationType, &rec.IsRead, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func MarkRecommendationRead(ctx context.Context, pool *pgxpool.Pool, userID, recommendationID int) error {
	cmd, err := pool.Exec(ctx, `
		UPDATE ai_recommendations SET is_read = TRUE WHERE id = $1 AND user_id = $2
	`, recommendationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark recommendation read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteRecommendation(ctx context.Context, pool *pgxpool.Pool, userID, recommendationID int) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM ai_recommendations WHERE id = $1 AND user_id = $2`, recommendationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
