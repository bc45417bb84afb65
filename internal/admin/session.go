package admin

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/recipehub/backend/internal/models"
)

// SessionCookie is the name of the signed admin session cookie.
const SessionCookie = "admin_session"

const sessionTTL = 12 * time.Hour

// SessionManager signs and verifies admin session cookies.
type SessionManager struct {
	secret string
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: secret}
}

// Issue creates a signed session token for a staff user.
func (m *SessionManager) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"staff":   user.IsStaff,
		"exp":     time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Parse verifies a session token and returns the user ID it was
// issued for.
func (m *SessionManager) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return uuid.Nil, errors.New("unexpected signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid session")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("invalid session claims")
	}
	return uuid.Parse(userIDStr)
}
