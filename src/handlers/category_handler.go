package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
)

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := db.GetAllCategories(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get categories: %v", err)
			http.Error(w, "failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}
