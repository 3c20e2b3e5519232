package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/advisor"
	"fintrack-server/src/handlers"
	"fintrack-server/src/mail"
	"fintrack-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, mailer *mail.Mailer, adv *advisor.Advisor, frontendURL string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(frontendURL))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", handlers.Register(pool, mailer))
		r.Post("/auth/verify-otp", handlers.VerifyOTP(pool, mailer))
		r.Post("/auth/resend-otp", handlers.ResendOTP(pool, mailer))
		r.Post("/auth/login", handlers.Login(pool))
		r.Post("/auth/forgot-password", handlers.ForgotPassword(pool, mailer))
		r.Post("/auth/reset-password", handlers.ResetPassword(pool))

		// Categories are global and readable without a token
		r.Get("/categories", handlers.GetAllCategories(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// Expenses
			r.Post("/expenses", handlers.CreateExpense(pool))
			r.Get("/expenses", handlers.GetExpenses(pool))
			r.Get("/expenses/stats/summary", handlers.GetExpenseStats(pool))
			r.Get("/expenses/{expense_id}", handlers.GetExpenseByID(pool))
			r.Put("/expenses/{expense_id}", handlers.UpdateExpense(pool))
			r.Delete("/expenses/{expense_id}", handlers.DeleteExpense(pool))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(pool))
			r.Get("/budgets", handlers.GetAllBudgetsForUser(pool))
			r.Get("/budgets/overview/current", handlers.GetBudgetOverview(pool))
			r.Get("/budgets/missing/{month_year}", handlers.GetCategoriesWithoutBudget(pool))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

			// Goals
			r.Post("/goals", handlers.CreateGoal(pool))
			r.Get("/goals", handlers.GetAllGoals(pool))
			r.Get("/goals/stats/summary", handlers.GetGoalStats(pool))
			r.Get("/goals/{goal_id}", handlers.GetGoalByID(pool))
			r.Put("/goals/{goal_id}", handlers.UpdateGoal(pool))
			r.Patch("/goals/{goal_id}/progress", handlers.AddGoalProgress(pool))
			r.Delete("/goals/{goal_id}", handlers.DeleteGoal(pool))

			// AI advice
			r.Post("/ai/recommendations/budgeting", handlers.GenerateBudgetingRecommendation(adv, pool))
			r.Post("/ai/insights/spending", handlers.GenerateSpendingInsights(adv, pool))
			r.Post("/ai/advice/goal/{goal_id}", handlers.GenerateGoalAdvice(adv, pool))
			r.Get("/ai/recommendations", handlers.GetRecommendations(pool))
			r.Patch("/ai/recommendations/{recommendation_id}/read", handlers.MarkRecommendationRead(pool))
			r.Delete("/ai/recommendations/{recommendation_id}", handlers.DeleteRecommendation(pool))
		})
	})

	return r
}
