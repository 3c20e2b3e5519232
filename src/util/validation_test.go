package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@example.org",
		"u_1%x@sub.example.com",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword(""))
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
	assert.True(t, ValidatePassword("correct horse battery staple"))
}

func TestValidateName(t *testing.T) {
	assert.False(t, ValidateName(""))
	assert.False(t, ValidateName("a"))
	assert.True(t, ValidateName("Al"))
	assert.True(t, ValidateName("Alice"))
}

func TestValidateMonthYear(t *testing.T) {
	assert.True(t, ValidateMonthYear("2024-03"))
	assert.True(t, ValidateMonthYear("1999-12"))

	assert.False(t, ValidateMonthYear("2024-3"))
	assert.False(t, ValidateMonthYear("2024-03-05"))
	assert.False(t, ValidateMonthYear("24-03"))
	assert.False(t, ValidateMonthYear("March 2024"))
	assert.False(t, ValidateMonthYear(""))
}

func TestValidatePositiveAmount(t *testing.T) {
	assert.True(t, ValidatePositiveAmount(decimal.RequireFromString("0.01")))
	assert.True(t, ValidatePositiveAmount(decimal.RequireFromString("120")))
	assert.False(t, ValidatePositiveAmount(decimal.Zero))
	assert.False(t, ValidatePositiveAmount(decimal.RequireFromString("-5")))
}

func TestValidGoalStatus(t *testing.T) {
	for _, status := range []string{"active", "completed", "paused"} {
		assert.True(t, ValidGoalStatus(status))
	}
	assert.False(t, ValidGoalStatus("archived"))
	assert.False(t, ValidGoalStatus(""))
	assert.False(t, ValidGoalStatus("Active"))
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[otp] = true
	}
	// 50 draws from a 900000-value space should essentially never collide
	// into a single value.
	assert.Greater(t, len(seen), 1)
}
