package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and validates HS256 bearer tokens for API clients.
type TokenService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewTokenService creates a new TokenService. A non-positive ttl defaults to 24 hours.
func NewTokenService(jwtSecret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// IssueToken signs a token for subject that expires after the configured TTL.
func (s *TokenService) IssueToken(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
