// Package identity verifies portal-issued identity tokens and classifies
// callers into the school's two roles.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
}

type Identity struct {
	Email string
	Role  Role
}

// VerifyToken checks an HS256 identity token and derives the caller's role
// from the verified email.
func VerifyToken(tokenString string, secret string, now time.Time) (*Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing auth secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, fmt.Errorf("missing email in token")
	}

	return &Identity{Email: email, Role: ClassifyRole(email)}, nil
}

// ClassifyRole applies the school's account naming convention: student
// accounts carry a four-digit admission number before the "@", anything else
// belongs to staff. It is a naming convention riding on a verified identity,
// not a security boundary of its own.
func ClassifyRole(email string) Role {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	if len(local) >= 4 && allDigits(local[:4]) {
		return RoleStudent
	}
	return RoleTeacher
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
