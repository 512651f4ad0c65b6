package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionService mints and validates the signed guest tokens that tie a
// browser session to its persisted cart slot. There are no accounts or
// credentials behind a session; the token only fixes the slot identity.
type SessionService struct {
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
}

// NewSessionService creates a new SessionService.
func NewSessionService(jwtSecret string) *SessionService {
	return &SessionService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * 24 * time.Hour, // Carts survive for a month
	}
}

// IssueToken creates a fresh session ID and a signed token carrying it.
func (s *SessionService) IssueToken() (string, string, error) {
	sessionID := uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(s.tokenDurat).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return sessionID, tokenString, nil
}

// ValidateToken parses and validates a session token, returning the
// session ID it carries.
func (s *SessionService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Session token validation error: %v", err)
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session token missing session_id claim")
	}
	return sessionID, nil
}
