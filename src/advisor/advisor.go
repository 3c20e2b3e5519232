// Package advisor generates financial advice text from stored records using
// the Gemini API and persists the results as ai_recommendations rows.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/ledger"
	"fintrack-server/src/models"
)

const modelName = "gemini-1.5-flash"

type Advisor struct {
	client *genai.Client
}

func New(ctx context.Context, apiKey string) (*Advisor, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Advisor{client: client}, nil
}

func (a *Advisor) Close() error {
	return a.client.Close()
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	model := a.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty generation response")
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", errors.New("no text in generation response")
	}
	return text, nil
}

func (a *Advisor) summarize(ctx context.Context, pool *pgxpool.Pool, userID int) (FinancialSummary, error) {
	expenses, err := db.GetRecentExpenses(ctx, pool, userID)
	if err != nil {
		return FinancialSummary{}, err
	}
	goals, err := db.GetAllGoals(ctx, pool, userID, models.GoalStatusActive)
	if err != nil {
		return FinancialSummary{}, err
	}
	budgets, err := db.GetAllBudgetsForUser(ctx, pool, userID, ledger.MonthKey(time.Now()))
	if err != nil {
		return FinancialSummary{}, err
	}
	return Summarize(expenses, goals, budgets), nil
}

// BudgetingRecommendation generates budgeting advice from the user's recent
// records and stores it.
func (a *Advisor) BudgetingRecommendation(ctx context.Context, pool *pgxpool.Pool, userID int) (string, error) {
	summary, err := a.summarize(ctx, pool, userID)
	if err != nil {
		return "", err
	}
	text, err := a.generate(ctx, BuildRecommendationPrompt(summary))
	if err != nil {
		return "", err
	}
	if _, err := db.CreateRecommendation(ctx, pool, userID, text, models.RecommendationTypeBudgeting); err != nil {
		log.Printf("ERROR: Failed to save budgeting recommendation for user %d: %v", userID, err)
	}
	return text, nil
}

// SpendingInsights generates spending analysis from the user's recent
// records and stores it.
func (a *Advisor) SpendingInsights(ctx context.Context, pool *pgxpool.Pool, userID int) (string, error) {
	summary, err := a.summarize(ctx, pool, userID)
	if err != nil {
		return "", err
	}
	text, err := a.generate(ctx, BuildSpendingInsightsPrompt(summary))
	if err != nil {
		return "", err
	}
	if _, err := db.CreateRecommendation(ctx, pool, userID, text, models.RecommendationTypeSpending); err != nil {
		log.Printf("ERROR: Failed to save spending insights for user %d: %v", userID, err)
	}
	return text, nil
}

// GoalAdvice generates advice for one caller-owned goal and stores it.
// Returns db.ErrNotFound when the goal is absent or owned by someone else.
func (a *Advisor) GoalAdvice(ctx context.Context, pool *pgxpool.Pool, userID, goalID int) (string, error) {
	goal, err := db.GetGoalByID(ctx, pool, userID, goalID)
	if err != nil {
		return "", err
	}
	summary, err := a.summarize(ctx, pool, userID)
	if err != nil {
		return "", err
	}
	text, err := a.generate(ctx, BuildGoalAdvicePrompt(summary, goal))
	if err != nil {
		return "", err
	}
	if _, err := db.CreateRecommendation(ctx, pool, userID, text, models.RecommendationTypeGoal); err != nil {
		log.Printf("ERROR: Failed to save goal advice for user %d: %v", userID, err)
	}
	return text, nil
}
