package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/api/middleware"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	adminService   *service.AdminService
	settingService *service.SettingService
}

func NewAuthHandler(authService *service.AuthService, adminService *service.AdminService, settingService *service.SettingService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		adminService:   adminService,
		settingService: settingService,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Conta criada com sucesso", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Login realizado com sucesso", resp)
}

// Logout 用户登出。全部服务端缓存随登出失效，
// 后续访问惰性回源重建
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.AuthError(c, "")
		return
	}

	h.adminService.Invalidate()
	h.settingService.Invalidate()

	response.SuccessWithMessage(c, "Sessão encerrada", nil)
}

// Me 当前登录用户信息
// GET /api/v1/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.authService.Profile(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}
