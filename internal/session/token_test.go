package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestPrincipalFromToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub":   "principal-1",
		"email": "ada@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	p, err := PrincipalFromToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", p.ID)
	assert.Equal(t, "ada@example.com", p.Email)
}

func TestPrincipalFromToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"Garbage", "not-a-token"},
		{"Wrong secret", signToken(t, jwt.MapClaims{
			"sub": "p1", "email": "a@x.com",
		}, "other-secret")},
		{"Missing subject", signToken(t, jwt.MapClaims{
			"email": "a@x.com",
		}, testSecret)},
		{"Missing email", signToken(t, jwt.MapClaims{
			"sub": "p1",
		}, testSecret)},
		{"Expired", signToken(t, jwt.MapClaims{
			"sub": "p1", "email": "a@x.com",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrincipalFromToken(tt.token, testSecret)
			assert.Error(t, err)
		})
	}
}

func TestStaticSession(t *testing.T) {
	loggedOut := false
	s := NewStaticSession(Principal{ID: "p1", Email: "a@x.com"}, func(context.Context) {
		loggedOut = true
	})

	assert.Equal(t, "p1", s.Principal().ID)
	s.Logout(context.Background())
	assert.True(t, loggedOut)
}
