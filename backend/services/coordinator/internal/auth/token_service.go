package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued to kiosk logins.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	StationID int64  `json:"station_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewTokenService returns a configured token service.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = 8 * time.Hour
	}
	return &TokenService{secret: []byte(secret), expiresIn: expiresIn}
}

// Generate issues a token for a user logging in at a station.
func (t *TokenService) Generate(userID int64, role string, stationID int64) (string, error) {
	if userID == 0 {
		return "", errors.New("auth: user id is required")
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		StationID: stationID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate verifies and decodes a token.
func (t *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("auth: invalid claims")
}
