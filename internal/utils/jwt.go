package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of every issued credential.
const TokenTTL = time.Hour

var (
	jwtSecret  []byte
	secretOnce sync.Once
)

// The secret is read once, lazily, so godotenv.Load in main has
// already run by the time the first token is signed. Concurrent first
// requests must not race on the write.
func secretKey() []byte {
	secretOnce.Do(func() {
		if len(jwtSecret) == 0 {
			jwtSecret = []byte(os.Getenv("JWT_SECRET"))
		}
	})
	return jwtSecret
}

// Claims carries only the caller's email. The full user document is
// never embedded so a token can't hold a stale role or profile.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a one-hour credential for the given email.
func GenerateJWT(email string) (string, error) {
	key := secretKey()
	if len(key) == 0 {
		return "", errors.New("JWT_SECRET is not configured")
	}
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateJWT parses and verifies a token string, returning its claims.
// Expired or tampered tokens fail here.
func ValidateJWT(tokenStr string) (*Claims, error) {
	key := secretKey()
	if len(key) == 0 {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Email == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
