package repository

import (
	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
)

type AffiliateRepository struct {
	db *gorm.DB
}

func NewAffiliateRepository(db *gorm.DB) *AffiliateRepository {
	return &AffiliateRepository{db: db}
}

func (r *AffiliateRepository) Create(affiliate *model.Affiliate) error {
	return r.db.Create(affiliate).Error
}

func (r *AffiliateRepository) GetByUserID(userID int64) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.Preload("Referrals").Where("user_id = ?", userID).First(&affiliate).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

func (r *AffiliateRepository) GetByCode(code string) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.Where("code = ?", code).First(&affiliate).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

func (r *AffiliateRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Affiliate{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// IncrementClicks 推广链接点击计数，原 increment_affiliate_clicks RPC
func (r *AffiliateRepository) IncrementClicks(code string) error {
	result := r.db.Model(&model.Affiliate{}).Where("code = ?", code).
		Update("clicks", gorm.Expr("clicks + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordConversion 转化入账：写入 referral 明细并累加转化数和余额
func (r *AffiliateRepository) RecordConversion(referral *model.Referral) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(referral).Error; err != nil {
			return err
		}
		return tx.Model(&model.Affiliate{}).Where("id = ?", referral.AffiliateID).
			Updates(map[string]interface{}{
				"conversions": gorm.Expr("conversions + 1"),
				"balance":     gorm.Expr("balance + ?", referral.Commission),
			}).Error
	})
}

// DeductBalance 扣减余额，余额不足时不生效
func (r *AffiliateRepository) DeductBalance(id int64, amount float64) (bool, error) {
	return deductBalance(r.db, id, amount)
}

// ReserveWithdraw 提现预留：扣减余额并写入提现申请，同一事务。
// 申请写入失败时扣减一并回滚
func (r *AffiliateRepository) ReserveWithdraw(id int64, amount float64, withdraw *model.WithdrawRequest) (bool, error) {
	deducted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := deductBalance(tx, id, amount)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := tx.Create(withdraw).Error; err != nil {
			return err
		}
		deducted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deducted, nil
}

func deductBalance(db *gorm.DB, id int64, amount float64) (bool, error) {
	result := db.Model(&model.Affiliate{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListAll 后台推广列表（含转化明细），按创建时间倒序
func (r *AffiliateRepository) ListAll() ([]model.Affiliate, error) {
	var affiliates []model.Affiliate
	err := r.db.Preload("Referrals").Order("created_at DESC").Find(&affiliates).Error
	return affiliates, err
}
