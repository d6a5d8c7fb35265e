package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Issuer is set on every token this service signs
const Issuer = "credit-admin"

// Subject is the signed-in user a token is issued for
type Subject struct {
	UserID string
	Email  string
	Role   string
}

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Token is a signed access token
type Token struct {
	Value     string    `json:"access_token"`
	ID        string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issue signs an access token for sub valid for ttl
func Issue(sub Subject, secret string, ttl time.Duration) (*Token, error) {
	now := time.Now()
	id := uuid.NewString()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: sub.UserID,
		Email:  sub.Email,
		Role:   sub.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   sub.UserID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &Token{Value: signed, ID: id, ExpiresAt: expiresAt}, nil
}

// Validate checks the signature, issuer and expiry and returns the claims
func Validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject != claims.UserID {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
