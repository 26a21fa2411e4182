package jwt

import (
	"errors"

	"time"

	"github.com/golang-jwt/jwt"
)

// JWTProvider mints and validates the signed session tokens carried in the
// access_token cookie. Tokens are self-contained; the server keeps no
// revocation list, so a token stays valid until its expiry.
type JWTProvider struct {
	Secret     string
	SessionTTL time.Duration
}

func NewJWTProvider(secret string, sessionTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		SessionTTL: sessionTTL,
	}
}

func (p *JWTProvider) GenerateSessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(p.SessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseSessionToken returns the user id a valid token was issued for.
// Expired and tampered tokens are indistinguishable to callers.
func (p *JWTProvider) ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if err := claims.Valid(); err != nil {
		return "", errors.New("token expired")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user id")
	}

	return userID, nil
}
