package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/api/middleware"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

type AffiliateHandler struct {
	affiliateService *service.AffiliateService
	authService      *service.AuthService
}

func NewAffiliateHandler(affiliateService *service.AffiliateService, authService *service.AuthService) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: affiliateService,
		authService:      authService,
	}
}

// Stats 当前用户的推广数据
// GET /api/v1/affiliate/stats
func (h *AffiliateHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.affiliateService.Stats(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAffiliateNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, stats)
}

// EnsureCode 开通推广（幂等）
// POST /api/v1/affiliate/code
func (h *AffiliateHandler) EnsureCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return
	}

	affiliate, err := h.affiliateService.EnsureCode(user)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"code": affiliate.Code,
		"link": h.affiliateService.Link(affiliate.Code),
	})
}

// TrackClick 推广链接点击计数
// POST /api/v1/affiliate/clicks/:code
func (h *AffiliateHandler) TrackClick(c *gin.Context) {
	code := c.Param("code")

	if err := h.affiliateService.TrackClick(code); err != nil {
		switch {
		case errors.Is(err, service.ErrAffiliateNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, nil)
}

// RequestWithdraw 提现申请
// POST /api/v1/affiliate/withdrawals
func (h *AffiliateHandler) RequestWithdraw(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.RequestWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return
	}

	withdraw, err := h.affiliateService.RequestWithdraw(user, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBelowMinWithdraw):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInsufficientBalance):
			response.InsufficientFundError(c, err.Error())
		case errors.Is(err, service.ErrAffiliateNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Solicitação de saque registrada", withdraw)
}

// ListWithdraws 当前用户的提现记录
// GET /api/v1/affiliate/withdrawals
func (h *AffiliateHandler) ListWithdraws(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	requests, err := h.affiliateService.ListWithdraws(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, requests)
}
