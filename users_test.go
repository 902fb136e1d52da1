package main

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	tdb, err := openDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { tdb.Close() })
	require.NoError(t, applySchema(tdb, "schema.sql"))
	return tdb
}

func TestUserStoreCreate(t *testing.T) {
	s := NewUserStore(setupTestDB(t))

	u, err := s.Create("Example User", "user@example.com", "password")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.False(t, u.Admin)

	stored, err := s.ByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example User", stored.Name)
	assert.NotEqual(t, "password", stored.PwHash)
	assert.True(t, checkPassword(stored.PwHash, "password"))
}

func TestUserStoreCreateValidation(t *testing.T) {
	s := NewUserStore(setupTestDB(t))
	_, err := s.Create("Taken", "taken@example.com", "password")
	require.NoError(t, err)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		message  string
	}{
		{"blank name", "", "a@example.com", "password", "Name can't be blank"},
		{"blank email", "A", "", "password", "Email can't be blank"},
		{"malformed email", "A", "not-an-email", "password", "Email is invalid"},
		{"blank password", "A", "a@example.com", "", "Password can't be blank"},
		{"short password", "A", "a@example.com", "short", "Password is too short (minimum is 6 characters)"},
		{"taken email", "A", "taken@example.com", "password", "Email has already been taken"},
		{"taken email different case", "A", "TAKEN@EXAMPLE.COM", "password", "Email has already been taken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(tc.userName, tc.email, tc.password)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr, tc.message)
		})
	}

	// Nothing slipped through
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserStoreCreateCollectsAllErrors(t *testing.T) {
	s := NewUserStore(setupTestDB(t))

	_, err := s.Create("", "", "")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr, 3)
}

func TestUserStoreLookups(t *testing.T) {
	s := NewUserStore(setupTestDB(t))
	u, err := s.Create("Example User", "user@example.com", "password")
	require.NoError(t, err)

	byEmail, err := s.ByEmail("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.ByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreUpdate(t *testing.T) {
	s := NewUserStore(setupTestDB(t))
	u, err := s.Create("Example User", "user@example.com", "password")
	require.NoError(t, err)
	_, err = s.Create("Other", "other@example.com", "password")
	require.NoError(t, err)

	// Keeping one's own email is not a uniqueness violation
	updated, err := s.Update(u.ID, "New Name", "user@example.com", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.True(t, checkPassword(updated.PwHash, "newpassword"))

	// Stealing another user's email is
	_, err = s.Update(u.ID, "New Name", "other@example.com", "newpassword")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "Email has already been taken")

	_, err = s.Update(9999, "Ghost", "ghost@example.com", "password")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreDeleteCascades(t *testing.T) {
	tdb := setupTestDB(t)
	s := NewUserStore(tdb)
	ms := NewMicropostStore(tdb)

	u, err := s.Create("Example User", "user@example.com", "password")
	require.NoError(t, err)
	keeper, err := s.Create("Keeper", "keeper@example.com", "password")
	require.NoError(t, err)

	_, err = ms.Create(u.ID, "one")
	require.NoError(t, err)
	_, err = ms.Create(u.ID, "two")
	require.NoError(t, err)
	kept, err := ms.Create(keeper.ID, "kept")
	require.NoError(t, err)

	require.NoError(t, s.Delete(u.ID))

	_, err = s.ByID(u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	n, err := ms.CountFor(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// The other user's posts are untouched
	_, err = ms.ByID(kept.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Delete(u.ID), ErrNotFound)
}

func TestUserStorePage(t *testing.T) {
	s := NewUserStore(setupTestDB(t))
	for _, name := range []string{"charlie", "Alice", "bob", "Dave"} {
		_, err := s.Create(name, name+"@example.com", "password")
		require.NoError(t, err)
	}

	// Ordered by name, case-insensitively
	page, err := s.Page(1, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Alice", page[0].Name)
	assert.Equal(t, "bob", page[1].Name)
	assert.Equal(t, "charlie", page[2].Name)

	page, err = s.Page(2, 3)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Dave", page[0].Name)

	// Out of range is empty, not an error
	page, err = s.Page(5, 3)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUserStoreSetAdmin(t *testing.T) {
	s := NewUserStore(setupTestDB(t))
	u, err := s.Create("Example User", "user@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, s.SetAdmin(u.ID, true))
	reloaded, err := s.ByID(u.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Admin)

	require.NoError(t, s.SetAdmin(u.ID, false))
	reloaded, err = s.ByID(u.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Admin)

	assert.ErrorIs(t, s.SetAdmin(9999, true), ErrNotFound)
}
