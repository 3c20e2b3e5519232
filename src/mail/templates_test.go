package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOTPBody(t *testing.T) {
	body := BuildOTPBody("123456")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "Email Verification")
	assert.Contains(t, body, "expire in 10 minutes")
}

func TestBuildPasswordResetBody(t *testing.T) {
	body := BuildPasswordResetBody("654321")
	assert.Contains(t, body, "654321")
	assert.Contains(t, body, "Password Reset Request")
	assert.Contains(t, body, "expire in 10 minutes")
}

func TestBuildWelcomeBody(t *testing.T) {
	body := BuildWelcomeBody("Alice")
	assert.Contains(t, body, "Hello Alice,")
	assert.Contains(t, body, "Welcome to Financial Manager!")
}
