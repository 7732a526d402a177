package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestSettingRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingRepository(db)

	require.NoError(t, repo.Upsert(model.SettingKeyMercadoPagoToken, "token-1"))
	require.NoError(t, repo.Upsert(model.SettingKeyMercadoPagoToken, "token-2"))

	setting, err := repo.Get(model.SettingKeyMercadoPagoToken)
	require.NoError(t, err)
	assert.Equal(t, "token-2", setting.Value)

	var count int64
	require.NoError(t, db.Model(&model.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettingRepository_Get_QuotesKeyColumnOnMySQL(t *testing.T) {
	// "key" is a reserved word in MySQL; a raw string condition would
	// leave it unquoted and the statement would not even parse there.
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "portal:portal@tcp(127.0.0.1:3306)/portal?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var queries []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_query_sql", func(tx *gorm.DB) {
		queries = append(queries, tx.Statement.SQL.String())
	}))

	repo := NewSettingRepository(db)
	_, _ = repo.Get(model.SettingKeyMercadoPagoToken)

	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "`key` = ?")
}

func TestSettingRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingRepository(db)

	_, err := repo.Get("chave_inexistente")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
