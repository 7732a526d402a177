package main

import (
	"context"
	"fmt"
	"log"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/api"
	"github.com/vyntrixhost/portal_go_server/internal/api/handler"
	"github.com/vyntrixhost/portal_go_server/internal/database"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/cron"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/email"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/mercadopago"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/pubsub"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/queue"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/ws"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)
	withdrawRepo := repository.NewWithdrawRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// 初始化 Service
	settingService := service.NewSettingService(settingRepo)
	if err := settingService.LoadToken(); err != nil {
		log.Printf("Warning: failed to load payment token: %v", err)
	}
	adminService := service.NewAdminService(userRepo, orderRepo, affiliateRepo, withdrawRepo)
	authService := service.NewAuthService(userRepo, affiliateRepo, cfg)
	affiliateService := service.NewAffiliateService(affiliateRepo, withdrawRepo, cfg)
	orderService := service.NewOrderService(
		orderRepo,
		settingService,
		adminService,
		mercadopago.NewClient(cfg.MercadoPago.APIBaseURL),
		email.NewService(&cfg.Email),
		cfg,
	)

	// 支付通知队列（webhook 只入队，worker 进程消费）
	paymentQueue := queue.NewQueue(rdb, cfg.Queue.PaymentQueue)

	// 订阅 worker 的订单事件，转发到后台 WebSocket
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(event *pubsub.OrderEvent) {
			msg := &ws.Message{
				Type: event.Type,
				Data: event,
			}
			if err := wsHub.Broadcast(msg); err != nil {
				log.Printf("Failed to broadcast order event: %v", err)
			}
		})
		if err != nil {
			log.Printf("Order event subscription stopped: %v", err)
		}
	}()

	// 过期未支付订单的定时清理
	cronService := cron.NewService(orderRepo, cfg.Orders.PendingExpireDays)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, adminService, settingService)
	orderHandler := handler.NewOrderHandler(orderService, authService)
	affiliateHandler := handler.NewAffiliateHandler(affiliateService, authService)
	adminHandler := handler.NewAdminHandler(adminService, orderService, affiliateService, settingService, authService)
	planHandler := handler.NewPlanHandler(cfg)
	webhookHandler := handler.NewWebhookHandler(paymentQueue)
	websocketHandler := handler.NewWebSocketHandler(wsHub, userRepo, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		orderHandler,
		affiliateHandler,
		adminHandler,
		planHandler,
		webhookHandler,
		websocketHandler,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
