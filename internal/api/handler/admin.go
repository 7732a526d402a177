package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/api/middleware"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

type AdminHandler struct {
	adminService     *service.AdminService
	orderService     *service.OrderService
	affiliateService *service.AffiliateService
	settingService   *service.SettingService
	authService      *service.AuthService
}

func NewAdminHandler(
	adminService *service.AdminService,
	orderService *service.OrderService,
	affiliateService *service.AffiliateService,
	settingService *service.SettingService,
	authService *service.AuthService,
) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		orderService:     orderService,
		affiliateService: affiliateService,
		settingService:   settingService,
		authService:      authService,
	}
}

// Overview 后台总览数据
// GET /api/v1/admin/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	overview, err := h.adminService.Overview(actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, overview)
}

// Refresh 强制重载后台数据
// POST /api/v1/admin/refresh
func (h *AdminHandler) Refresh(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.adminService.Refresh(actor); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "Dados atualizados", nil)
}

// UpdateOrderStatus 更新订单状态/接入信息
// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "ID de pedido inválido")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(actor, orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Pedido atualizado", order)
}

// ProcessWithdraw 标记提现已打款
// PUT /api/v1/admin/withdrawals/:id/pay
func (h *AdminHandler) ProcessWithdraw(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	withdrawID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "ID de saque inválido")
		return
	}

	withdraw, err := h.affiliateService.ProcessWithdraw(withdrawID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWithdrawNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrWithdrawAlreadyPaid):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	// 提现状态变化后刷新快照，失败不影响打款结果
	_ = h.adminService.Refresh(actor)

	response.SuccessWithMessage(c, "Saque marcado como pago", withdraw)
}

// UpdateMercadoPagoToken 更新支付令牌
// PUT /api/v1/admin/settings/mercado-pago-token
func (h *AdminHandler) UpdateMercadoPagoToken(c *gin.Context) {
	if _, ok := h.actor(c); !ok {
		return
	}

	var req dto.UpdateMercadoPagoTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.settingService.UpdateMercadoPagoToken(req.Token); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "Token de pagamento atualizado", nil)
}

// actor 取当前登录用户，失败时已写好响应
func (h *AdminHandler) actor(c *gin.Context) (*model.User, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return nil, false
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return nil, false
	}
	return user, true
}
