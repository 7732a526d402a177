package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
)

type WithdrawRepository struct {
	db *gorm.DB
}

func NewWithdrawRepository(db *gorm.DB) *WithdrawRepository {
	return &WithdrawRepository{db: db}
}

func (r *WithdrawRepository) Create(request *model.WithdrawRequest) error {
	return r.db.Create(request).Error
}

func (r *WithdrawRepository) GetByID(id int64) (*model.WithdrawRequest, error) {
	var request model.WithdrawRequest
	err := r.db.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// MarkPaid 提现打款完成
func (r *WithdrawRepository) MarkPaid(id int64, paidAt time.Time) error {
	return r.db.Model(&model.WithdrawRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    model.WithdrawStatusPaid,
			"paid_date": paidAt,
		}).Error
}

func (r *WithdrawRepository) ListByUser(userID int64) ([]model.WithdrawRequest, error) {
	var requests []model.WithdrawRequest
	err := r.db.Where("user_id = ?", userID).Order("request_date DESC").Find(&requests).Error
	return requests, err
}

// ListAll 后台提现列表，按申请时间倒序
func (r *WithdrawRepository) ListAll() ([]model.WithdrawRequest, error) {
	var requests []model.WithdrawRequest
	err := r.db.Order("request_date DESC").Find(&requests).Error
	return requests, err
}
