package stores

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"boutique/internal/models"
)

// session is the persisted shape of the auth state.
type session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthStore holds the current login session and persists it to a JSON file
// so it survives restarts. It is the TokenSource of the request layer; a 401
// from the server clears it through Invalidate.
type AuthStore struct {
	path string

	mu   sync.RWMutex
	sess session
}

// NewAuthStore creates an auth store persisted at path and loads any existing
// session. Expired tokens found on disk are discarded. An unreadable file is
// treated as logged out.
func NewAuthStore(path string) *AuthStore {
	s := &AuthStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Printf("auth: ignoring corrupt session file %s: %v", path, err)
		return s
	}
	if sess.Token != "" && tokenExpired(sess.Token) {
		return s
	}
	s.sess = sess
	return s
}

// Login stores the token and user and persists the session.
func (s *AuthStore) Login(token string, user models.User) error {
	s.mu.Lock()
	s.sess = session{Token: token, User: &user}
	s.mu.Unlock()
	return s.save()
}

// Logout clears the session and removes the persisted file.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	s.sess = session{}
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("auth: failed to remove session file: %v", err)
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

// Invalidate clears the session. Called by the request layer on 401.
func (s *AuthStore) Invalidate() {
	s.Logout()
}

// LoggedIn reports whether a session is active.
func (s *AuthStore) LoggedIn() bool {
	return s.Token() != ""
}

// User returns the logged-in user, or nil.
func (s *AuthStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.User == nil {
		return nil
	}
	u := *s.sess.User
	return &u
}

func (s *AuthStore) save() error {
	s.mu.RLock()
	data, err := json.Marshal(s.sess)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// tokenExpired checks the exp claim without verifying the signature; the
// client has no secret, the server re-checks on every request anyway.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}
