package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GuestClaims identifies an anonymous player across reconnects.
type GuestClaims struct {
	GuestID string `json:"guest_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and checks guest tokens with a shared HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateGuestToken creates a JWT for guestID that expires after the issuer's TTL.
func (ti *TokenIssuer) GenerateGuestToken(guestID string) (string, error) {
	now := ti.now()
	claims := &GuestClaims{
		GuestID: guestID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   guestID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// ValidateGuestToken validates a guest JWT and returns its claims
func (ti *TokenIssuer) ValidateGuestToken(tokenString string) (*GuestClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GuestClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(ti.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GuestClaims); ok && token.Valid && claims.GuestID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
