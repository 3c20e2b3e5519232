package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

func parseExpenseRequest(r *http.Request) (*models.ExpenseRequest, time.Time, error) {
	var req models.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, time.Time{}, errors.New("invalid request")
	}
	if req.CategoryID <= 0 {
		return nil, time.Time{}, errors.New("valid category id is required")
	}
	if !util.ValidatePositiveAmount(req.Amount) {
		return nil, time.Time{}, errors.New("amount must be positive")
	}
	date, err := time.Parse(time.DateOnly, req.ExpenseDate)
	if err != nil {
		return nil, time.Time{}, errors.New("expense_date must be YYYY-MM-DD")
	}
	return &req, date, nil
}

func CreateExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		req, date, err := parseExpenseRequest(r)
		if err != nil {
			log.Printf("ERROR: Invalid create expense request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		expense := &models.Expense{
			UserID:      int(userID),
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
			ExpenseDate: date,
		}
		created, err := db.CreateExpense(r.Context(), pool, expense)
		if err != nil {
			log.Printf("ERROR: Failed to create expense for user %d: %v", userID, err)
			http.Error(w, "failed to create expense", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created expense id %d for user %d, category %d", created.ID, userID, created.CategoryID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetExpenses(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var filter db.ExpenseFilter
		if v := r.URL.Query().Get("start_date"); v != "" {
			if d, err := time.Parse(time.DateOnly, v); err == nil {
				filter.StartDate = &d
			}
		}
		if v := r.URL.Query().Get("end_date"); v != "" {
			if d, err := time.Parse(time.DateOnly, v); err == nil {
				filter.EndDate = &d
			}
		}
		if v := r.URL.Query().Get("category_id"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				filter.CategoryID = id
			}
		}
		filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
		filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

		expenses, err := db.GetExpenses(r.Context(), pool, int(userID), filter)
		if err != nil {
			log.Printf("ERROR: Failed to get expenses for user %d: %v", userID, err)
			http.Error(w, "failed to get expenses", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

func GetExpenseByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid expense id param: %s", expenseIDStr)
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}
		expense, err := db.GetExpenseByID(r.Context(), pool, int(userID), expenseID)
		if err != nil {
			log.Printf("ERROR: Expense id %d not found for user %d: %v", expenseID, userID, err)
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expense)
	}
}

func UpdateExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid expense id param: %s", expenseIDStr)
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}
		req, date, err := parseExpenseRequest(r)
		if err != nil {
			log.Printf("ERROR: Invalid update expense request for user %d: %v", userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		expense := &models.Expense{
			ID:          expenseID,
			UserID:      int(userID),
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
			ExpenseDate: date,
		}
		updated, err := db.UpdateExpense(r.Context(), pool, expense)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "expense not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update expense id %d for user %d: %v", expenseID, userID, err)
			http.Error(w, "failed to update expense", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated expense id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		expenseIDStr := chi.URLParam(r, "expense_id")
		expenseID, err := strconv.Atoi(expenseIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid expense id param: %s", expenseIDStr)
			http.Error(w, "invalid expense id", http.StatusBadRequest)
			return
		}
		err = db.DeleteExpense(r.Context(), pool, int(userID), expenseID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "expense not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete expense id %d for user %d: %v", expenseID, userID, err)
			http.Error(w, "failed to delete expense", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted expense id %d for user %d", expenseID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "expense deleted"})
	}
}

func GetExpenseStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		period := r.URL.Query().Get("period")
		now := time.Now()
		var since time.Time
		switch period {
		case "week":
			since = now.AddDate(0, 0, -7)
		case "year":
			since = now.AddDate(-1, 0, 0)
		default:
			since = now.AddDate(0, -1, 0)
		}

		stats, breakdown, err := db.GetExpenseStats(r.Context(), pool, int(userID), since)
		if err != nil {
			log.Printf("ERROR: Failed to get expense stats for user %d: %v", userID, err)
			http.Error(w, "failed to get expense stats", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"summary":            stats,
			"category_breakdown": breakdown,
		})
	}
}
