package token

import (
	"errors"
	"time"

	autherrors "smg-portal/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// SessionClaims is the JWT payload of a portal session.
type SessionClaims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source used for issued-at and expiry.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// Subject is what a session token is issued for.
type Subject struct {
	UserID     string
	Role       string
	Department string
}

func (t *TokenIssuer) Issue(sub Subject) (accessToken, refreshToken string, err error) {
	accessToken, err = t.sign(sub, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = t.sign(sub, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (t *TokenIssuer) sign(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := SessionClaims{
		UserID:     sub.UserID,
		Role:       sub.Role,
		Department: sub.Department,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

// Parse validates tokenString and checks it is of the expected type.
func (t *TokenIssuer) Parse(tokenString, tokenType string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" || claims.TokenType != tokenType {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
