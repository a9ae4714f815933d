package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Service provides JWT token generation and parsing for claims type T.
// T must implement jwt.Claims, typically by embedding
// jwt.RegisteredClaims.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
}

// NewService creates a new JWT service. The newEmpty function returns a
// zero-value instance of T for parsing.
func NewService[T gojwt.Claims](cfg Config, newEmpty func() T) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service[T]{cfg: cfg, newEmpty: newEmpty}, nil
}

// NewTokenService creates a Service for the standard API Claims type.
func NewTokenService(cfg Config) (*Service[*Claims], error) {
	return NewService(cfg, func() *Claims { return &Claims{} })
}

// Generate creates a signed JWT token from the given claims. Claims
// implementing SetDefaults get standard time and identity claims filled
// in from the config first.
func (s *Service[T]) Generate(claims T) (string, error) {
	if setter, ok := any(claims).(interface {
		SetDefaults(time.Time, time.Duration, string, string)
	}); ok {
		setter.SetDefaults(time.Now(), s.cfg.TokenTTL, s.cfg.Issuer, s.cfg.Audience)
	}

	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse validates and parses a JWT token string into claims of type T.
// It verifies the signature, expiry, and the configured issuer and
// audience.
func (s *Service[T]) Parse(tokenString string) (T, error) {
	var zero T

	claims := s.newEmpty()
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return zero, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return zero, errors.New("auth: invalid token")
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		return zero, errors.New("auth: unexpected claims type")
	}
	return parsed, nil
}

// AsValidator bridges the typed service with middleware that does not
// know the claims type.
func (s *Service[T]) AsValidator() TokenValidator {
	return TokenValidatorFunc(func(token string) (any, error) {
		return s.Parse(token)
	})
}

func (s *Service[T]) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

func (s *Service[T]) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience))
	}
	return opts
}
