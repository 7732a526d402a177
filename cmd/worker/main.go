package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/database"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/email"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/mercadopago"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/pubsub"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/queue"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/service"
	"github.com/vyntrixhost/portal_go_server/internal/worker"
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
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	paymentQueue := queue.NewQueue(rdb, cfg.Queue.PaymentQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository 和 Service
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)
	withdrawRepo := repository.NewWithdrawRepository(db)

	settingService := service.NewSettingService(repository.NewSettingRepository(db))
	if err := settingService.LoadToken(); err != nil {
		log.Printf("Warning: failed to load payment token: %v", err)
	}
	affiliateService := service.NewAffiliateService(affiliateRepo, withdrawRepo, cfg)

	// 创建支付通知处理器
	processor := worker.NewProcessor(
		orderRepo,
		userRepo,
		affiliateService,
		settingService,
		mercadopago.NewClient(cfg.MercadoPago.APIBaseURL),
		publisher,
		email.NewService(&cfg.Email),
		cfg,
	)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	// 启动 worker 循环
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					// 从队列获取支付通知
					msg, err := paymentQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop notification: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					log.Printf("Worker %d: processing payment %s", workerID, msg.PaymentID)
					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: payment %s failed: %v", workerID, msg.PaymentID, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
