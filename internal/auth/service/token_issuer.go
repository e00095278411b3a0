package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fairwaylabs/launchpoint/internal/common/clock"
	userdomain "github.com/fairwaylabs/launchpoint/internal/user/domain"
)

// Claims is the identity payload embedded in a bearer token. Verification is
// stateless: the signature and expiry are the whole contract, and callers
// re-resolve the user record before trusting anything else.
type Claims struct {
	UserID   int64
	Username string
	Email    string
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenIssuer(secret string, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (ti *TokenIssuer) Issue(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(ti.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	incrementTokensIssued()
	return tokenString, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (Claims, error) {
	incrementTokenValidations()

	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return ti.secret, nil
		},
		jwt.WithTimeFunc(ti.clock.Now),
	)
	if err != nil || !parsed.Valid {
		incrementTokenValidationsFailed()
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		incrementTokenValidationsFailed()
		return Claims{}, fmt.Errorf("%w: invalid claims type", ErrInvalidToken)
	}

	id, ok := mapClaims["id"].(float64)
	username, _ := mapClaims["username"].(string)
	email, _ := mapClaims["email"].(string)
	if !ok || username == "" || email == "" {
		incrementTokenValidationsFailed()
		return Claims{}, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return Claims{
		UserID:   int64(id),
		Username: username,
		Email:    email,
	}, nil
}
