// Package auth manages the locally persisted login session. The client
// never validates tokens cryptographically; it only extracts the user id
// the backend embedded, and lets the backend reject expired tokens.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/filex"
)

const sessionFile = "session.json"

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// UserIDFromToken extracts the user id claim without verifying the
// signature; the client has no access to the signing key.
func UserIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: malformed token: %v", common.ErrValidation, err)
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", fmt.Errorf("%w: token carries no user id", common.ErrValidation)
	}
	return userID, nil
}

// NewSession builds a session from a freshly issued token.
func NewSession(token string) (*Session, error) {
	userID, err := UserIDFromToken(token)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: userID, CreatedAt: time.Now().UTC()}, nil
}

func sessionPath() (string, error) {
	dir, err := filex.EnsureAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFile), nil
}

// Save persists the session for subsequent runs.
func (s *Session) Save() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or (nil, nil) when nobody is logged in.
func Load() (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}
	return &s, nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func Clear() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
