package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestWithdrawRepository_MarkPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewWithdrawRepository(db)
	user := testutil.TestUser(t, db)
	request := testutil.TestWithdraw(t, db, user.ID, 90.00)

	paidAt := time.Now()
	require.NoError(t, repo.MarkPaid(request.ID, paidAt))

	found, err := repo.GetByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawStatusPaid, found.Status)
	require.NotNil(t, found.PaidDate)
}

func TestWithdrawRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewWithdrawRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	testutil.TestWithdraw(t, db, user.ID, 50.00)
	testutil.TestWithdraw(t, db, user.ID, 60.00)
	testutil.TestWithdraw(t, db, other.ID, 70.00)

	requests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}
