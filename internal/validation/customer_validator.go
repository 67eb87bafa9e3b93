package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"
)

// DefaultEmailPattern accepts local@domain.tld, case-insensitively.
const DefaultEmailPattern = `(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

const (
	FieldFirstName = "firstName"
	FieldSurname   = "surname"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

// Rules holds the field constraints. Build it once at startup and inject it.
type Rules struct {
	NameMinLength      int
	NameMaxLength      int
	EmailMaxLength     int
	EmailPattern       *regexp.Regexp
	PasswordMinLength  int
	PasswordMinClasses int
}

// DefaultRules returns the stock constraints.
func DefaultRules() Rules {
	return Rules{
		NameMinLength:      2,
		NameMaxLength:      100,
		EmailMaxLength:     100,
		EmailPattern:       regexp.MustCompile(DefaultEmailPattern),
		PasswordMinLength:  8,
		PasswordMinClasses: 3,
	}
}

// RulesWithEmailPattern returns DefaultRules with a custom email pattern.
func RulesWithEmailPattern(pattern string) (Rules, error) {
	rules := DefaultRules()
	if pattern == "" {
		return rules, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid email pattern: %w", err)
	}
	rules.EmailPattern = re
	return rules, nil
}

// CustomerValidator runs field checks on customer input.
type CustomerValidator struct {
	rules Rules
}

// NewCustomerValidator creates a new CustomerValidator.
func NewCustomerValidator(rules Rules) *CustomerValidator {
	return &CustomerValidator{rules: rules}
}

// Validate runs the checks in order firstName, surname, email, password
// and returns the first failure.
func (v *CustomerValidator) Validate(c *models.Customer) error {
	if c == nil {
		return apperrors.Validation("customer", "customer is required")
	}
	checks := []func() error{
		func() error { return v.ValidateFirstName(c.FirstName) },
		func() error { return v.ValidateSurname(c.Surname) },
		func() error { return v.ValidateEmail(c.Email) },
		func() error { return v.ValidatePassword(c.Password) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomerValidator) ValidateFirstName(name string) error {
	return v.validateName(FieldFirstName, "first name", name)
}

func (v *CustomerValidator) ValidateSurname(name string) error {
	return v.validateName(FieldSurname, "surname", name)
}

func (v *CustomerValidator) validateName(field, label, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation(field, label+" is required")
	}
	n := utf8.RuneCountInString(name)
	if n < v.rules.NameMinLength || n > v.rules.NameMaxLength {
		return apperrors.Validation(field, fmt.Sprintf("%s must be between %d and %d characters",
			label, v.rules.NameMinLength, v.rules.NameMaxLength))
	}
	return nil
}

// ValidateEmail checks presence, length and format.
func (v *CustomerValidator) ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.Validation(FieldEmail, "email is required")
	}
	if utf8.RuneCountInString(email) > v.rules.EmailMaxLength {
		return apperrors.Validation(FieldEmail, fmt.Sprintf("email must be at most %d characters", v.rules.EmailMaxLength))
	}
	if v.rules.EmailPattern != nil && !v.rules.EmailPattern.MatchString(email) {
		return apperrors.Validation(FieldEmail, "email has an invalid format")
	}
	return nil
}

// ValidatePassword requires the minimum length and at least PasswordMinClasses of
// upper case, lower case, digit and symbol.
func (v *CustomerValidator) ValidatePassword(password string) error {
	if password == "" {
		return apperrors.Validation(FieldPassword, "password is required")
	}
	if utf8.RuneCountInString(password) < v.rules.PasswordMinLength || characterClasses(password) < v.rules.PasswordMinClasses {
		return apperrors.Validation(FieldPassword, fmt.Sprintf(
			"password must be at least %d characters and contain %d of: upper case, lower case, digit, symbol",
			v.rules.PasswordMinLength, v.rules.PasswordMinClasses))
	}
	return nil
}

func characterClasses(s string) int {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	n := 0
	for _, ok := range []bool{upper, lower, digit, symbol} {
		if ok {
			n++
		}
	}
	return n
}
