package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard JWT claims plus the application fields. Role
// and Superuser are embedded so the authorization layer can resolve the
// actor without a DB lookup per request.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role"` // "student" | "vendor" | "admin"
	Superuser bool   `json:"superuser,omitempty"`
}

// Generate signs an HS256 token embedding the user id, role and superuser
// flag.
func Generate(secret, userID, role string, superuser bool, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		Role:      role,
		Superuser: superuser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the embedded identity. It fails on
// invalid signature, expiry or an unexpected signing method.
func Parse(secret, tokenString string) (userID, role string, superuser bool, err error) {
	if secret == "" {
		return "", "", false, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", false, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", false, fmt.Errorf("invalid claims")
	}
	return claims.UserID, claims.Role, claims.Superuser, nil
}
