package util

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	emailRe     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	monthYearRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

func ValidateName(name string) bool {
	return len(name) >= 2
}

// ValidateMonthYear checks the YYYY-MM budget period key format.
func ValidateMonthYear(monthYear string) bool {
	return monthYearRe.MatchString(monthYear)
}

func ValidatePositiveAmount(amount decimal.Decimal) bool {
	return amount.IsPositive()
}

func ValidGoalStatus(status string) bool {
	switch status {
	case "active", "completed", "paused":
		return true
	}
	return false
}
