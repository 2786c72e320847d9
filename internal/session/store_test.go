package session

import (
	"context"
	"testing"
	"time"

	"github.com/danialarif/gigdesk/internal/db"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestParse_ExtractsClaims(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.MapClaims{
		"sub":  "acct-1",
		"name": "Daniel Wong",
		"role": "provider",
		"exp":  exp.Unix(),
	})

	sess, err := Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", sess.AccountID)
	assert.Equal(t, "Daniel Wong", sess.Name)
	assert.Equal(t, domain.RoleProvider, sess.Role)
	assert.Equal(t, exp.Unix(), sess.ExpiresAt.Unix())
	assert.False(t, sess.Expired(time.Now()))
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	sess := &Session{
		Token:     signedToken(t, jwt.MapClaims{"sub": "acct-1", "role": "admin"}),
		AccountID: "acct-1",
		Role:      domain.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, loaded.Token)
	assert.Equal(t, domain.RoleAdmin, loaded.Role)
	assert.Equal(t, sess.ExpiresAt.Unix(), loaded.ExpiresAt.Unix())

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestStore_Token_FailsFastOnExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := store.Token(ctx)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestStore_RecentProjects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RememberProject(ctx, "p-1", "Landing Page", domain.RoleProvider))
	require.NoError(t, store.RememberProject(ctx, "p-2", "Mobile App", domain.RoleProvider))

	recent, err := store.RecentProjects(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Re-opening moves a project back to the top.
	require.NoError(t, store.RememberProject(ctx, "p-1", "Landing Page", domain.RoleProvider))
	recent, err = store.RecentProjects(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "p-1", recent[0].ProjectID)
}
