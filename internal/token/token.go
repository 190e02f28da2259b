package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/swingnotes/api/internal/models"
)

// TTL is how long an issued token stays valid.
const TTL = time.Hour

// Claims carries the identity embedded in a token alongside the
// standard registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Manager issues and verifies signed identity tokens. Tokens are
// self-contained, so verification never touches the database.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager with the given signing secret
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue produces a signed token embedding the user's identity
func (m *Manager) Issue(user *models.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string, returning the embedded
// identity. Any failure (bad signature, expiry, missing user id)
// surfaces as models.ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, models.ErrInvalidToken
	}

	return claims, nil
}
