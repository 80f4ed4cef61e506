package shared

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordSymbols is the set of symbols the password policy accepts.
const PasswordSymbols = "@$!%*?&"

// NewValidator returns a validator with the strongpw rule registered.
// strongpw requires length >= 8, at least one letter, one digit and one
// symbol from PasswordSymbols, and no characters outside that alphabet.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpw", strongPassword)
	return v
}

func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return letter && digit && symbol
}
