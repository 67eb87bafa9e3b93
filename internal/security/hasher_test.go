package security_test

import (
	"strings"
	"testing"

	"customerapi/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := security.NewPasswordHasher(security.HasherOptions{Iterations: 1000})

	record, err := hasher.Hash("Str0ng!pass")
	require.NoError(t, err)
	assert.Len(t, strings.Split(record, "."), 3)
	assert.True(t, strings.HasPrefix(record, "1000."))

	verified, needsUpgrade, err := hasher.Check(record, "Str0ng!pass")
	assert.NoError(t, err)
	assert.True(t, verified)
	assert.False(t, needsUpgrade)

	verified, _, err = hasher.Check(record, "Str0ng!pasS")
	assert.NoError(t, err)
	assert.False(t, verified)
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	hasher := security.NewPasswordHasher(security.HasherOptions{Iterations: 1000})

	first, err := hasher.Hash("Str0ng!pass")
	require.NoError(t, err)
	second, err := hasher.Hash("Str0ng!pass")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_NeedsUpgradeAfterIterationChange(t *testing.T) {
	old := security.NewPasswordHasher(security.HasherOptions{Iterations: 1000})
	record, err := old.Hash("Str0ng!pass")
	require.NoError(t, err)

	current := security.NewPasswordHasher(security.HasherOptions{Iterations: 2000})
	verified, needsUpgrade, err := current.Check(record, "Str0ng!pass")
	assert.NoError(t, err)
	assert.True(t, verified)
	assert.True(t, needsUpgrade)
}

func TestPasswordHasher_Defaults(t *testing.T) {
	hasher := security.NewPasswordHasher(security.HasherOptions{})
	assert.Equal(t, security.DefaultIterations, hasher.Iterations())
}

func TestPasswordHasher_InvalidFormat(t *testing.T) {
	hasher := security.NewPasswordHasher(security.HasherOptions{Iterations: 1000})

	for _, record := range []string{
		"",
		"plaintext",
		"1000.c2FsdA==",
		"1000.c2FsdA==.a2V5.extra",
		"abc.c2FsdA==.a2V5",
		"-5.c2FsdA==.a2V5",
		"1000.!!!.a2V5",
	} {
		_, _, err := hasher.Check(record, "whatever")
		assert.ErrorIs(t, err, security.ErrInvalidHashFormat, "record %q", record)
	}
}
