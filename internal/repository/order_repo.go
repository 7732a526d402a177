package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetByPaymentID(paymentID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("payment_id = ?", paymentID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus 更新订单状态，accessInfo 为 nil 时不改动凭据字段
func (r *OrderRepository) UpdateStatus(id int64, status string, accessInfo *string) error {
	updates := map[string]interface{}{"status": status}
	if accessInfo != nil {
		updates["access_info"] = *accessInfo
	}
	return r.db.Model(&model.Order{}).Where("id = ?", id).Updates(updates).Error
}

// MarkPaid 记录支付编号并置为已支付
func (r *OrderRepository) MarkPaid(id int64, paymentID string) error {
	return r.db.Model(&model.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.OrderStatusPaid,
		"payment_id": paymentID,
	}).Error
}

func (r *OrderRepository) ListByUser(userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ListAll 后台订单列表，按创建时间倒序
func (r *OrderRepository) ListAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// CancelStalePending 取消超过期限仍未支付的订单，返回取消数量
func (r *OrderRepository) CancelStalePending(before time.Time) (int64, error) {
	result := r.db.Model(&model.Order{}).
		Where("status = ? AND created_at < ?", model.OrderStatusPending, before).
		Update("status", model.OrderStatusCancelled)
	return result.RowsAffected, result.Error
}
