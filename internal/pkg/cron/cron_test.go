package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/testutil"
)

func TestCancelStaleOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := repository.NewOrderRepository(db)
	svc := NewService(orderRepo, 7)

	user := testutil.TestUser(t, db)

	stale := testutil.TestOrder(t, db, user.ID)
	// SQLite 下 gorm 会自动填 CreatedAt，直接改库里的时间戳
	require.NoError(t, db.Model(stale).Update("created_at", time.Now().Add(-10*24*time.Hour)).Error)

	fresh := testutil.TestOrder(t, db, user.ID)
	paid := testutil.TestOrder(t, db, user.ID, testutil.WithOrderStatus(model.OrderStatusPaid))
	require.NoError(t, db.Model(paid).Update("created_at", time.Now().Add(-10*24*time.Hour)).Error)

	svc.CancelStaleOrders()

	var got model.Order
	require.NoError(t, db.First(&got, stale.ID).Error)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)

	got = model.Order{}
	require.NoError(t, db.First(&got, fresh.ID).Error)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	// 已支付订单不受清理影响
	got = model.Order{}
	require.NoError(t, db.First(&got, paid.ID).Error)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
}

func TestStartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewService(repository.NewOrderRepository(db), 7)
	svc.Start()
	svc.Stop()
}
