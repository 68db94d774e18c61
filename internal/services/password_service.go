package services

import (
	"regexp"
	"strings"
)

// Password strength levels from weakest to strongest
const (
	StrengthVeryWeak   = "VERY_WEAK"
	StrengthWeak       = "WEAK"
	StrengthFair       = "FAIR"
	StrengthGood       = "GOOD"
	StrengthStrong     = "STRONG"
	StrengthVeryStrong = "VERY_STRONG"
)

// PasswordStrength is the result of analyzing one candidate password
type PasswordStrength struct {
	Strength    string   `json:"strength"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	Warnings    []string `json:"warnings"`
	Acceptable  bool     `json:"acceptable"`
}

var commonPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "password123": {}, "admin": {},
	"qwerty": {}, "letmein": {}, "welcome": {}, "monkey": {},
	"1234567890": {}, "abc123": {}, "111111": {}, "123123": {},
	"password1": {}, "1234": {}, "12345": {}, "dragon": {},
	"master": {}, "login": {},
}

var commonWords = []string{
	"password", "admin", "user", "login", "welcome", "hello",
	"solar", "panel", "system", "energy", "power", "fault",
	"detection", "monitor", "control", "dashboard",
}

var (
	lowercasePattern  = regexp.MustCompile(`[a-z]`)
	uppercasePattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern      = regexp.MustCompile(`[0-9]`)
	specialPattern    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
	sequentialPattern = regexp.MustCompile(`(012|123|234|345|456|567|678|789|890|abc|bcd|cde|def|efg|fgh|ghi|hij|ijk|jkl|klm|lmn|mno|nop|opq|pqr|qrs|rst|stu|tuv|uvw|vwx|wxy|xyz)`)
)

// PasswordStrengthService scores candidate passwords and enforces the
// acceptance policy used at registration and password change.
type PasswordStrengthService struct{}

// NewPasswordStrengthService creates a new password strength service
func NewPasswordStrengthService() *PasswordStrengthService {
	return &PasswordStrengthService{}
}

// Analyze scores a candidate password and reports its weaknesses
func (s *PasswordStrengthService) Analyze(password string) *PasswordStrength {
	if password == "" {
		return &PasswordStrength{
			Strength:    StrengthVeryWeak,
			Score:       0,
			Suggestions: []string{"Password is required"},
			Warnings:    []string{"Password cannot be empty"},
			Acceptable:  false,
		}
	}

	score := 0
	suggestions := []string{}
	warnings := []string{}

	// Length scoring
	if len(password) < 8 {
		warnings = append(warnings, "Password is too short")
		suggestions = append(suggestions, "Use at least 8 characters")
	} else {
		score += 10
	}
	if len(password) >= 12 {
		score += 10
	}
	if len(password) >= 16 {
		score += 10
	}

	// Character variety
	hasLower := lowercasePattern.MatchString(password)
	hasUpper := uppercasePattern.MatchString(password)
	hasDigit := digitPattern.MatchString(password)
	hasSpecial := specialPattern.MatchString(password)

	if hasLower {
		score += 10
	} else {
		suggestions = append(suggestions, "Add lowercase letters")
	}
	if hasUpper {
		score += 10
	} else {
		suggestions = append(suggestions, "Add uppercase letters")
	}
	if hasDigit {
		score += 10
	} else {
		suggestions = append(suggestions, "Add numbers")
	}
	if hasSpecial {
		score += 15
	} else {
		suggestions = append(suggestions, "Add special characters (!@#$%^&*)")
	}

	variety := 0
	for _, has := range []bool{hasLower, hasUpper, hasDigit, hasSpecial} {
		if has {
			variety++
		}
	}
	if variety >= 3 {
		score += 10
	}
	if variety == 4 {
		score += 10
	}

	lower := strings.ToLower(password)

	if _, ok := commonPasswords[lower]; ok {
		score = max(0, score-30)
		warnings = append(warnings, "This is a commonly used password")
		suggestions = append(suggestions, "Avoid common passwords")
	}

	if sequentialPattern.MatchString(lower) {
		score = max(0, score-15)
		warnings = append(warnings, "Contains sequential characters")
		suggestions = append(suggestions, "Avoid sequential patterns like 'abc' or '123'")
	}

	if hasRepeatedRun(password) {
		score = max(0, score-10)
		warnings = append(warnings, "Contains repeated characters")
		suggestions = append(suggestions, "Avoid repeating the same character multiple times")
	}

	if containsCommonWord(lower) {
		score = max(0, score-10)
		warnings = append(warnings, "Contains common dictionary words")
		suggestions = append(suggestions, "Mix letters, numbers, and symbols instead of using whole words")
	}

	var strength string
	var acceptable bool
	switch {
	case score >= 90:
		strength, acceptable = StrengthVeryStrong, true
	case score >= 75:
		strength, acceptable = StrengthStrong, true
	case score >= 60:
		strength, acceptable = StrengthGood, true
	case score >= 40:
		strength, acceptable = StrengthFair, len(password) >= 8
	case score >= 20:
		strength, acceptable = StrengthWeak, false
	default:
		strength, acceptable = StrengthVeryWeak, false
	}

	if len(password) < 8 {
		acceptable = false
	}

	return &PasswordStrength{
		Strength:    strength,
		Score:       score,
		Suggestions: suggestions,
		Warnings:    warnings,
		Acceptable:  acceptable,
	}
}

// IsAcceptable reports whether the password meets the acceptance policy
func (s *PasswordStrengthService) IsAcceptable(password string) bool {
	return s.Analyze(password).Acceptable
}

// Requirements lists the password policy for display to clients
func (s *PasswordStrengthService) Requirements() []string {
	return []string{
		"At least 8 characters long",
		"Contains lowercase letters (a-z)",
		"Contains uppercase letters (A-Z)",
		"Contains numbers (0-9)",
		"Contains special characters (!@#$%^&*)",
		"Avoid common passwords and patterns",
		"Avoid sequential or repeated characters",
	}
}

// hasRepeatedRun reports whether any character appears three or more times
// in a row
func hasRepeatedRun(password string) bool {
	runes := []rune(password)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func containsCommonWord(lower string) bool {
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
