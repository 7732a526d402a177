package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	created := testutil.TestUser(t, db, testutil.WithEmail("unico@example.com"))

	found, err := repo.GetByEmail("unico@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmail("ninguem@example.com")
	assert.Error(t, err)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithEmail("existe@example.com"))

	exists, err := repo.ExistsByEmail("existe@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("naoexiste@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ReferredByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	created := testutil.TestUser(t, db, testutil.WithReferredBy("PARCEIRO9"))

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ReferredByCode)
	assert.Equal(t, "PARCEIRO9", *found.ReferredByCode)
}
