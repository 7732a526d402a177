package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestSettingService_LoadToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewSettingService(repository.NewSettingRepository(db))

	t.Run("missing row leaves token empty", func(t *testing.T) {
		require.NoError(t, service.LoadToken())
		assert.Empty(t, service.MercadoPagoToken())
	})

	t.Run("loads stored token", func(t *testing.T) {
		testutil.TestSetting(t, db, model.SettingKeyMercadoPagoToken, "APP_USR-stored")

		require.NoError(t, service.LoadToken())
		assert.Equal(t, "APP_USR-stored", service.MercadoPagoToken())
	})
}

func TestSettingService_UpdateMercadoPagoToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := NewSettingService(repository.NewSettingRepository(db))

	require.NoError(t, service.UpdateMercadoPagoToken("APP_USR-first"))
	assert.Equal(t, "APP_USR-first", service.MercadoPagoToken())

	// Update overwrites the same row and refreshes the cache.
	require.NoError(t, service.UpdateMercadoPagoToken("APP_USR-second"))
	assert.Equal(t, "APP_USR-second", service.MercadoPagoToken())

	var count int64
	require.NoError(t, db.Model(&model.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
