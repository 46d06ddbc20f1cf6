package stores_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"boutique/internal/models"
	"boutique/internal/stores"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte("test_secret"))
	assert.NoError(t, err)
	return s
}

func TestAuthStore_LoginPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	user := models.User{ID: 1, Email: "user@example.com", Name: "Shopper"}
	token := signedToken(t, time.Now().Add(time.Hour))

	store := stores.NewAuthStore(path)
	assert.False(t, store.LoggedIn())
	assert.NoError(t, store.Login(token, user))
	assert.True(t, store.LoggedIn())
	assert.Equal(t, token, store.Token())

	// A fresh store over the same file resumes the session.
	reloaded := stores.NewAuthStore(path)
	assert.True(t, reloaded.LoggedIn())
	assert.Equal(t, token, reloaded.Token())
	assert.Equal(t, "user@example.com", reloaded.User().Email)
}

func TestAuthStore_ExpiredSessionDiscardedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	expired := signedToken(t, time.Now().Add(-time.Hour))

	store := stores.NewAuthStore(path)
	assert.NoError(t, store.Login(expired, models.User{ID: 1}))

	reloaded := stores.NewAuthStore(path)
	assert.False(t, reloaded.LoggedIn())
}

func TestAuthStore_LogoutClearsSessionAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := stores.NewAuthStore(path)
	assert.NoError(t, store.Login(signedToken(t, time.Now().Add(time.Hour)), models.User{ID: 1}))

	store.Logout()
	assert.False(t, store.LoggedIn())
	assert.Nil(t, store.User())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAuthStore_InvalidateActsAsLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := stores.NewAuthStore(path)
	assert.NoError(t, store.Login(signedToken(t, time.Now().Add(time.Hour)), models.User{ID: 1}))

	// The request layer calls Invalidate when the server returns 401.
	store.Invalidate()
	assert.False(t, store.LoggedIn())
	assert.Equal(t, "", store.Token())
}

func TestAuthStore_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := stores.NewAuthStore(path)
	assert.False(t, store.LoggedIn())
}
