package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestParseExpenseRequest(t *testing.T) {
	req, date, err := parseExpenseRequest(jsonRequest(
		`{"category_id": 2, "amount": "120.50", "description": "weekly shop", "expense_date": "2024-03-05"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, req.CategoryID)
	assert.True(t, req.Amount.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "weekly shop", req.Description)
	assert.Equal(t, "2024-03-05", date.Format(time.DateOnly))
}

func TestParseExpenseRequest_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad json":         `{`,
		"missing category": `{"amount": "10", "expense_date": "2024-03-05"}`,
		"zero amount":      `{"category_id": 2, "amount": "0", "expense_date": "2024-03-05"}`,
		"negative amount":  `{"category_id": 2, "amount": "-5", "expense_date": "2024-03-05"}`,
		"bad date":         `{"category_id": 2, "amount": "10", "expense_date": "03/05/2024"}`,
		"missing date":     `{"category_id": 2, "amount": "10"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseExpenseRequest(jsonRequest(body))
			assert.Error(t, err)
		})
	}
}

func TestParseGoalRequest(t *testing.T) {
	req, targetDate, err := parseGoalRequest(jsonRequest(
		`{"title": "Emergency fund", "target_amount": "1000", "current_amount": "800", "target_date": "2025-06-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "Emergency fund", req.Title)
	assert.True(t, req.TargetAmount.Equal(decimal.RequireFromString("1000")))
	assert.True(t, req.CurrentAmount.Equal(decimal.RequireFromString("800")))
	require.NotNil(t, targetDate)
	assert.Equal(t, "2025-06-01", targetDate.Format(time.DateOnly))
}

func TestParseGoalRequest_NoTargetDate(t *testing.T) {
	_, targetDate, err := parseGoalRequest(jsonRequest(
		`{"title": "Emergency fund", "target_amount": "1000"}`))
	require.NoError(t, err)
	assert.Nil(t, targetDate)
}

func TestParseGoalRequest_Invalid(t *testing.T) {
	cases := map[string]string{
		"short title":      `{"title": "ab", "target_amount": "1000"}`,
		"zero target":      `{"title": "Emergency fund", "target_amount": "0"}`,
		"negative current": `{"title": "Emergency fund", "target_amount": "1000", "current_amount": "-1"}`,
		"bad target date":  `{"title": "Emergency fund", "target_amount": "1000", "target_date": "June 2025"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseGoalRequest(jsonRequest(body))
			assert.Error(t, err)
		})
	}
}

func TestValidateBudgetRequest(t *testing.T) {
	valid := &models.BudgetRequest{
		CategoryID:   2,
		MonthlyLimit: decimal.RequireFromString("500"),
		MonthYear:    "2024-03",
	}
	assert.NoError(t, validateBudgetRequest(valid))

	assert.Error(t, validateBudgetRequest(&models.BudgetRequest{
		CategoryID: 0, MonthlyLimit: decimal.RequireFromString("500"), MonthYear: "2024-03",
	}))
	assert.Error(t, validateBudgetRequest(&models.BudgetRequest{
		CategoryID: 2, MonthlyLimit: decimal.Zero, MonthYear: "2024-03",
	}))
	assert.Error(t, validateBudgetRequest(&models.BudgetRequest{
		CategoryID: 2, MonthlyLimit: decimal.RequireFromString("500"), MonthYear: "2024-3",
	}))
}
