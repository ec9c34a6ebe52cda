package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// PrincipalFromToken extracts the principal from a signed bearer token.
// The subject claim carries the principal ID and the email claim the
// address, matching the tokens the authentication service issues.
func PrincipalFromToken(tokenString, secret string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Principal{}, errors.New("token missing subject")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return Principal{}, errors.New("token missing email claim")
	}

	return Principal{ID: sub, Email: email}, nil
}
