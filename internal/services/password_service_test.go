package services_test

import (
	"testing"

	"github.com/solarwatch/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyPassword(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("")
	assert.Equal(t, services.StrengthVeryWeak, result.Strength)
	assert.Zero(t, result.Score)
	assert.False(t, result.Acceptable)
	assert.Contains(t, result.Warnings, "Password cannot be empty")
}

func TestAnalyzeCommonPassword(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("password")
	assert.False(t, result.Acceptable)
	assert.Contains(t, result.Warnings, "This is a commonly used password")
}

func TestAnalyzeShortPasswordNeverAcceptable(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("Xk9#mQ2")
	assert.False(t, result.Acceptable)
	assert.Contains(t, result.Warnings, "Password is too short")
}

func TestAnalyzeStrongPassword(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("Xk9#mQ2$vL5@wR8!")
	assert.Equal(t, services.StrengthVeryStrong, result.Strength)
	assert.True(t, result.Acceptable)
	assert.Empty(t, result.Warnings)
}

func TestAnalyzeSequentialCharacters(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("Xk9#abc$vL5@wR8!")
	assert.Contains(t, result.Warnings, "Contains sequential characters")
}

func TestAnalyzeRepeatedCharacters(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("Xk9#mmmQ2$vL5@w")
	assert.Contains(t, result.Warnings, "Contains repeated characters")
}

func TestAnalyzeCommonDictionaryWord(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("MySolarKey9$x")
	assert.Contains(t, result.Warnings, "Contains common dictionary words")
}

func TestAnalyzeMissingVarietySuggestions(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	result := svc.Analyze("lowercaseonly")
	assert.Contains(t, result.Suggestions, "Add uppercase letters")
	assert.Contains(t, result.Suggestions, "Add numbers")
	assert.Contains(t, result.Suggestions, "Add special characters (!@#$%^&*)")
}

func TestIsAcceptable(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	assert.True(t, svc.IsAcceptable("Tr7$kWm2"))
	assert.False(t, svc.IsAcceptable("short"))
	assert.False(t, svc.IsAcceptable("password123"))
}

func TestRequirementsListed(t *testing.T) {
	svc := services.NewPasswordStrengthService()

	reqs := svc.Requirements()
	assert.NotEmpty(t, reqs)
	assert.Contains(t, reqs, "At least 8 characters long")
}
