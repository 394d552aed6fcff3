package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "e-commerce-cart"

// Tokens issues and verifies HS256 signed bearer tokens whose subject is the
// user id.
type Tokens struct {
	key     []byte
	timeout time.Duration
	now     func() time.Time
}

func NewTokens(secret string, timeout time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("token timeout[%s] must be positive", timeout)
	}
	return &Tokens{key: []byte(secret), timeout: timeout, now: time.Now}, nil
}

func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	clm := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.timeout)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, clm).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id carried by a valid, unexpired token.
func (t *Tokens) Verify(token string) (string, error) {
	var clm jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &clm, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	if clm.Subject == "" {
		return "", errors.New("token carries no subject")
	}
	return clm.Subject, nil
}
