package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

var (
	ErrAffiliateNotFound   = errors.New("Dados de afiliado não encontrados")
	ErrBelowMinWithdraw    = errors.New("Valor abaixo do mínimo para saque")
	ErrInsufficientBalance = errors.New("Saldo insuficiente para saque")
	ErrWithdrawNotFound    = errors.New("Solicitação de saque não encontrada")
	ErrWithdrawAlreadyPaid = errors.New("Solicitação de saque já foi paga")
)

// 推广码字符集，去掉了易混淆的 0/O/1/I
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AffiliateService 推广服务：推广码、点击/转化统计、佣金提现
type AffiliateService struct {
	affiliateRepo *repository.AffiliateRepository
	withdrawRepo  *repository.WithdrawRepository
	cfg           *config.Config
}

func NewAffiliateService(
	affiliateRepo *repository.AffiliateRepository,
	withdrawRepo *repository.WithdrawRepository,
	cfg *config.Config,
) *AffiliateService {
	return &AffiliateService{
		affiliateRepo: affiliateRepo,
		withdrawRepo:  withdrawRepo,
		cfg:           cfg,
	}
}

// EnsureCode 确保用户有推广记录，没有就生成推广码并创建
func (s *AffiliateService) EnsureCode(user *model.User) (*model.Affiliate, error) {
	affiliate, err := s.affiliateRepo.GetByUserID(user.ID)
	if err == nil {
		return affiliate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	affiliate = &model.Affiliate{
		UserID:   user.ID,
		UserName: user.Name,
		Code:     code,
	}
	if err := s.affiliateRepo.Create(affiliate); err != nil {
		return nil, err
	}
	return affiliate, nil
}

// Link 推广链接，落在登录页并带上推广码
func (s *AffiliateService) Link(code string) string {
	return fmt.Sprintf("%s/login?ref=%s", s.cfg.Server.BaseURL, code)
}

// Stats 用户的推广数据，没有推广记录时返回明确的未找到错误
func (s *AffiliateService) Stats(userID int64) (*dto.AffiliateStatsResponse, error) {
	affiliate, err := s.affiliateRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAffiliateNotFound
		}
		return nil, err
	}

	referrals := affiliate.Referrals
	if referrals == nil {
		referrals = []model.Referral{}
	}

	return &dto.AffiliateStatsResponse{
		ID:          affiliate.ID,
		Code:        affiliate.Code,
		Link:        s.Link(affiliate.Code),
		Clicks:      affiliate.Clicks,
		Conversions: affiliate.Conversions,
		Balance:     affiliate.Balance,
		Referrals:   referrals,
	}, nil
}

// TrackClick 推广链接点击计数。码不存在时返回未找到
func (s *AffiliateService) TrackClick(code string) error {
	err := s.affiliateRepo.IncrementClicks(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAffiliateNotFound
	}
	return err
}

// RecordConversion 记录一次付费转化并入账佣金。
// 同一订单只入账一次（referral 表 order_id 唯一），自己推荐自己不计
func (s *AffiliateService) RecordConversion(code string, buyer *model.User, plan string, price float64, orderID int64) error {
	affiliate, err := s.affiliateRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAffiliateNotFound
		}
		return err
	}

	if affiliate.UserID == buyer.ID {
		return nil
	}

	referral := &model.Referral{
		AffiliateID:  affiliate.ID,
		ReferredName: buyer.Name,
		Plan:         plan,
		Commission:   price * s.cfg.Affiliate.CommissionRate,
		OrderID:      orderID,
	}
	return s.affiliateRepo.RecordConversion(referral)
}

// RequestWithdraw 提现申请。校验最低金额，余额即刻扣减预留
func (s *AffiliateService) RequestWithdraw(user *model.User, req *dto.RequestWithdrawRequest) (*model.WithdrawRequest, error) {
	if req.Amount < s.cfg.Affiliate.MinWithdraw {
		return nil, ErrBelowMinWithdraw
	}

	affiliate, err := s.affiliateRepo.GetByUserID(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAffiliateNotFound
		}
		return nil, err
	}

	withdraw := &model.WithdrawRequest{
		UserID:      user.ID,
		UserName:    user.Name,
		Amount:      req.Amount,
		Status:      model.WithdrawStatusPending,
		RequestDate: time.Now(),
	}
	ok, err := s.affiliateRepo.ReserveWithdraw(affiliate.ID, req.Amount, withdraw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientBalance
	}
	return withdraw, nil
}

// ListWithdraws 用户自己的提现记录
func (s *AffiliateService) ListWithdraws(userID int64) ([]model.WithdrawRequest, error) {
	return s.withdrawRepo.ListByUser(userID)
}

// ProcessWithdraw 后台标记提现已打款
func (s *AffiliateService) ProcessWithdraw(withdrawID int64) (*model.WithdrawRequest, error) {
	withdraw, err := s.withdrawRepo.GetByID(withdrawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawNotFound
		}
		return nil, err
	}
	if withdraw.Status == model.WithdrawStatusPaid {
		return nil, ErrWithdrawAlreadyPaid
	}

	if err := s.withdrawRepo.MarkPaid(withdrawID, time.Now()); err != nil {
		return nil, err
	}
	return s.withdrawRepo.GetByID(withdrawID)
}

// generateCode 生成 8 位推广码，碰撞时重试
func (s *AffiliateService) generateCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, 8)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			buf[i] = codeAlphabet[n.Int64()]
		}
		code := string(buf)

		exists, err := s.affiliateRepo.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("Falha ao gerar código de afiliado")
}
