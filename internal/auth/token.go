package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal types carried in the token. The two credential stores share
// the signing key but never the principal namespace.
const (
	PrincipalCustomer = "customer"
	PrincipalAdmin    = "admin"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	PrincipalID   uint   `json:"pid"`
	PrincipalType string `json:"ptype"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 24 * 60
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Generate signs a token for the principal. The jti identifies the token
// in the revocation store.
func (tm *TokenManager) Generate(principalID uint, principalType string) (token string, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()

	claims := &Claims{
		PrincipalID:   principalID,
		PrincipalType: principalType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
