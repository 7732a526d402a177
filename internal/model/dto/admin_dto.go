package dto

import (
	"github.com/vyntrixhost/portal_go_server/internal/model"
)

// AdminOverviewResponse 后台总览：四个集合一次性返回
type AdminOverviewResponse struct {
	Users            []model.User            `json:"users"`
	Orders           []model.Order           `json:"orders"`
	Affiliates       []model.Affiliate       `json:"affiliates"`
	WithdrawRequests []model.WithdrawRequest `json:"withdraw_requests"`
	LoadedAt         string                  `json:"loaded_at"`
}

// UpdateMercadoPagoTokenRequest 支付令牌更新请求
type UpdateMercadoPagoTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
