package dto

import (
	"github.com/vyntrixhost/portal_go_server/internal/model"
)

// AffiliateStatsResponse 推广数据（含全部转化明细）
type AffiliateStatsResponse struct {
	ID          int64            `json:"id"`
	Code        string           `json:"code"`
	Link        string           `json:"link"`
	Clicks      int              `json:"clicks"`
	Conversions int              `json:"conversions"`
	Balance     float64          `json:"balance"`
	Referrals   []model.Referral `json:"referrals"`
}

// RequestWithdrawRequest 提现申请
type RequestWithdrawRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
