package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 10000
	DefaultSaltSize   = 16
	DefaultKeySize    = 32

	recordDelimiter = "."
)

// ErrInvalidHashFormat is returned when a stored hash record cannot be parsed.
var ErrInvalidHashFormat = errors.New("invalid password hash format")

// HasherOptions configures PBKDF2 key derivation. Zero values take the defaults.
type HasherOptions struct {
	Iterations int
	SaltSize   int
	KeySize    int
}

// PasswordHasher derives PBKDF2-SHA512 hash records of the form
// "{iterations}.{base64 salt}.{base64 key}".
type PasswordHasher struct {
	opts HasherOptions
}

// NewPasswordHasher creates a new PasswordHasher.
func NewPasswordHasher(opts HasherOptions) *PasswordHasher {
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if opts.SaltSize <= 0 {
		opts.SaltSize = DefaultSaltSize
	}
	if opts.KeySize <= 0 {
		opts.KeySize = DefaultKeySize
	}
	return &PasswordHasher{opts: opts}
}

// Iterations is the iteration count new records are derived with.
func (h *PasswordHasher) Iterations() int {
	return h.opts.Iterations
}

// Hash derives a salted record for password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.opts.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := derive(password, salt, h.opts.Iterations, h.opts.KeySize)

	return strings.Join([]string{
		strconv.Itoa(h.opts.Iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, recordDelimiter), nil
}

// Check re-derives password with the parameters embedded in record.
// needsUpgrade is true when the record was produced with a different iteration count.
func (h *PasswordHasher) Check(record, password string) (verified bool, needsUpgrade bool, err error) {
	parts := strings.Split(record, recordDelimiter)
	if len(parts) != 3 {
		return false, false, fmt.Errorf("%w: expected 3 parts, got %d", ErrInvalidHashFormat, len(parts))
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false, false, fmt.Errorf("%w: bad iteration count %q", ErrInvalidHashFormat, parts[0])
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, false, fmt.Errorf("%w: salt: %v", ErrInvalidHashFormat, err)
	}
	expected, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false, false, fmt.Errorf("%w: key: %v", ErrInvalidHashFormat, err)
	}

	actual := derive(password, salt, iterations, len(expected))
	verified = subtle.ConstantTimeCompare(actual, expected) == 1
	needsUpgrade = iterations != h.opts.Iterations
	return verified, needsUpgrade, nil
}

func derive(password string, salt []byte, iterations, keySize int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha512.New)
}
