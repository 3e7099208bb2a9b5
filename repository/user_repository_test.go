package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/utils"
)

func TestUserCreateHashesPassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user, err := repo.Create(UserDraft{
		Name:     "Ada",
		Email:    "Ada@Example.COM",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email, "email is stored lowercase")
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "correct horse"))
	assert.Equal(t, models.RoleAuthor, user.Role, "role defaults to author")
}

func TestUserCreateValidation(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	tests := []struct {
		name  string
		draft UserDraft
		field string
	}{
		{"missing name", UserDraft{Email: "a@b.co", Password: "longenough"}, "name"},
		{"missing email", UserDraft{Name: "A", Password: "longenough"}, "email"},
		{"bad email", UserDraft{Name: "A", Email: "not-an-email", Password: "longenough"}, "email"},
		{"missing password", UserDraft{Name: "A", Email: "a@b.co"}, "password"},
		{"short password", UserDraft{Name: "A", Email: "a@b.co", Password: "1234567"}, "password"},
		{"unknown role", UserDraft{Name: "A", Email: "a@b.co", Password: "longenough", Role: "editor"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(tt.draft)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Failed validation must not write anything.
	_, _, err := repo.List("", 1, 10)
	require.NoError(t, err)
	var count int64
	require.NoError(t, repo.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	_, err := repo.Create(UserDraft{Name: "A", Email: "dup@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = repo.Create(UserDraft{Name: "B", Email: "DUP@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserUpdateRehashesOnlyWhenPasswordChanges(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user, err := repo.Create(UserDraft{Name: "A", Email: "a@example.com", Password: "firstpassword"})
	require.NoError(t, err)
	originalHash := user.PasswordHash

	// No password in the draft: hash untouched.
	updated, err := repo.Update(user.ID, UserDraft{Name: "A2", Email: "a@example.com", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, "A2", updated.Name)

	// New password: re-hashed before persistence.
	updated, err = repo.Update(user.ID, UserDraft{Name: "A2", Email: "a@example.com", Password: "secondpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)
	assert.True(t, utils.CheckPassword(updated.PasswordHash, "secondpassword"))
}

func TestUserUpdateNotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	_, err := repo.Update(999, UserDraft{Name: "X", Email: "x@y.co"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserListSearchAndPagination(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	for i := 0; i < 12; i++ {
		_, err := repo.Create(UserDraft{
			Name:     fmt.Sprintf("Writer %02d", i),
			Email:    fmt.Sprintf("writer%02d@example.com", i),
			Password: "longenough",
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(UserDraft{Name: "Reader", Email: "reader@example.com", Password: "longenough"})
	require.NoError(t, err)

	users, total, err := repo.List("writer", 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, users, 2)

	users, total, err = repo.List("reader@", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Reader", users[0].Name)
}

func TestUserDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user, err := repo.Create(UserDraft{Name: "A", Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(user.ID))
	assert.ErrorIs(t, repo.Delete(user.ID), ErrNotFound)

	_, err = repo.FindByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
