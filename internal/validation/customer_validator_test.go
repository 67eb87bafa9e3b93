package validation_test

import (
	"strings"
	"testing"

	"customerapi/internal/apperrors"
	"customerapi/internal/models"
	"customerapi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() *models.Customer {
	return &models.Customer{
		FirstName: "Ada",
		Surname:   "Lovelace",
		Email:     "ada@example.com",
		Password:  "Engine#1843",
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected apperrors.Error, got %v", err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	return appErr.Field
}

func TestValidate_Valid(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())
	assert.NoError(t, v.Validate(validCustomer()))
}

func TestValidate_Nil(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())
	assert.True(t, apperrors.IsValidation(v.Validate(nil)))
}

func TestValidate_FieldOrder(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())

	all := &models.Customer{}
	assert.Equal(t, validation.FieldFirstName, fieldOf(t, v.Validate(all)))

	all.FirstName = "Ada"
	assert.Equal(t, validation.FieldSurname, fieldOf(t, v.Validate(all)))

	all.Surname = "Lovelace"
	assert.Equal(t, validation.FieldEmail, fieldOf(t, v.Validate(all)))

	all.Email = "ada@example.com"
	assert.Equal(t, validation.FieldPassword, fieldOf(t, v.Validate(all)))
}

func TestValidateNames(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())

	assert.NoError(t, v.ValidateFirstName("Al"))
	assert.NoError(t, v.ValidateSurname(strings.Repeat("x", 100)))
	assert.Equal(t, validation.FieldFirstName, fieldOf(t, v.ValidateFirstName("A")))
	assert.Equal(t, validation.FieldFirstName, fieldOf(t, v.ValidateFirstName("   ")))
	assert.Equal(t, validation.FieldSurname, fieldOf(t, v.ValidateSurname(strings.Repeat("x", 101))))
	// length counts characters, not bytes
	assert.NoError(t, v.ValidateFirstName("Żó"))
}

func TestValidateEmail(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())

	for _, ok := range []string{"a@b.co", "First.Last+tag@Example.ORG", "x_y@sub.domain.io"} {
		assert.NoError(t, v.ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a@@b.com", "a b@c.com", "@b.com"} {
		assert.Equal(t, validation.FieldEmail, fieldOf(t, v.ValidateEmail(bad)), bad)
	}
	long := strings.Repeat("a", 95) + "@b.com"
	assert.Equal(t, validation.FieldEmail, fieldOf(t, v.ValidateEmail(long)))
}

func TestValidatePassword(t *testing.T) {
	v := validation.NewCustomerValidator(validation.DefaultRules())

	accepted := []string{
		"Abcdefg1", // upper, lower, digit
		"abcdef1!", // lower, digit, symbol
		"ABCDEF1!", // upper, digit, symbol
		"Abcdefg!", // upper, lower, symbol
		"Abcdef1!", // all four
	}
	for _, p := range accepted {
		assert.NoError(t, v.ValidatePassword(p), p)
	}

	rejected := []string{
		"",
		"abcdefgh", // one class
		"abcdefg1", // two classes
		"ABCDEFG!", // two classes
		"Abc1!",    // too short
	}
	for _, p := range rejected {
		assert.Equal(t, validation.FieldPassword, fieldOf(t, v.ValidatePassword(p)), p)
	}
}

func TestRulesWithEmailPattern(t *testing.T) {
	rules, err := validation.RulesWithEmailPattern(`^[a-z]+@corp\.example$`)
	require.NoError(t, err)
	v := validation.NewCustomerValidator(rules)

	assert.NoError(t, v.ValidateEmail("ada@corp.example"))
	assert.Error(t, v.ValidateEmail("ada@example.com"))

	_, err = validation.RulesWithEmailPattern("([")
	assert.Error(t, err)
}
