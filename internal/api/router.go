package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/api/handler"
	"github.com/vyntrixhost/portal_go_server/internal/api/middleware"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

type Router struct {
	authHandler      *handler.AuthHandler
	orderHandler     *handler.OrderHandler
	affiliateHandler *handler.AffiliateHandler
	adminHandler     *handler.AdminHandler
	planHandler      *handler.PlanHandler
	webhookHandler   *handler.WebhookHandler
	websocketHandler *handler.WebSocketHandler
	userRepo         *repository.UserRepository
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	orderHandler *handler.OrderHandler,
	affiliateHandler *handler.AffiliateHandler,
	adminHandler *handler.AdminHandler,
	planHandler *handler.PlanHandler,
	webhookHandler *handler.WebhookHandler,
	websocketHandler *handler.WebSocketHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		orderHandler:     orderHandler,
		affiliateHandler: affiliateHandler,
		adminHandler:     adminHandler,
		planHandler:      planHandler,
		webhookHandler:   webhookHandler,
		websocketHandler: websocketHandler,
		userRepo:         userRepo,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket（管理端订单推送）
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 套餐目录
		api.GET("/plans", r.planHandler.List)

		// 公开接口 - 推广点击计数
		api.POST("/affiliate/clicks/:code", r.affiliateHandler.TrackClick)

		// 支付网关回调
		api.POST("/payments/webhook", r.webhookHandler.HandleMercadoPago)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/auth/logout", r.authHandler.Logout)
			authenticated.GET("/users/me", r.authHandler.Me)

			// 订单
			orders := authenticated.Group("/orders")
			{
				orders.POST("", r.orderHandler.Create)
				orders.GET("", r.orderHandler.List)
				orders.GET("/:id", r.orderHandler.Get)
			}

			// 推广
			affiliate := authenticated.Group("/affiliate")
			{
				affiliate.GET("/stats", r.affiliateHandler.Stats)
				affiliate.POST("/code", r.affiliateHandler.EnsureCode)
				affiliate.POST("/withdrawals", r.affiliateHandler.RequestWithdraw)
				affiliate.GET("/withdrawals", r.affiliateHandler.ListWithdraws)
			}
		}

		// 管理端接口
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.AdminOnly(r.userRepo))
		{
			admin.GET("/overview", r.adminHandler.Overview)
			admin.POST("/refresh", r.adminHandler.Refresh)
			admin.PUT("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
			admin.PUT("/withdrawals/:id/pay", r.adminHandler.ProcessWithdraw)
			admin.PUT("/settings/mercado-pago-token", r.adminHandler.UpdateMercadoPagoToken)
		}
	}

	return engine
}
