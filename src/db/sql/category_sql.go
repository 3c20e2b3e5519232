package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "fintrack-server/src/db"
	"fintrack-server/src/models"
)

func GetAllCategories(ctx context.Context, pool *pgxpool.Pool) ([]models.Category, error) {
	if categories, ok := cache.GetCachedCategories(); ok {
		return categories, nil
	}

	query := `SELECT id, name, color, icon, created_at FROM categories ORDER BY name`
	rows, err := pool.Query(ctx, query)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cache.SetCachedCategories(categories)
	return categories, nil
}
