package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

const (
	// AccessTokenTTL is deliberately short; clients mint new access tokens
	// through the refresh endpoint.
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenIssuer = "nova-properties"
)

type AccessClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type RefreshClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	// PasswordUpdatedAt is the watermark (epoch milliseconds) of the user's
	// last password change at issue time. Refresh tokens minted before a
	// later change must be rejected.
	PasswordUpdatedAt int64 `json:"passwordUpdatedAt"`
	jwt.StandardClaims
}

func GenerateAccessToken(userID, role string, secret []byte) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(AccessTokenTTL).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func GenerateRefreshToken(userID, role string, passwordUpdatedAt time.Time, secret []byte) (string, error) {
	now := time.Now()
	watermark := passwordUpdatedAt.UnixMilli()
	if passwordUpdatedAt.IsZero() {
		watermark = now.UnixMilli()
	}

	claims := &RefreshClaims{
		UserID:            userID,
		Role:              role,
		PasswordUpdatedAt: watermark,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(RefreshTokenTTL).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateAccessToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseClaims(tokenStr, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func ValidateRefreshToken(tokenStr string, secret []byte) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parseClaims(tokenStr, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseClaims(tokenStr string, secret []byte, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
