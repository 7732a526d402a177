package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/database"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

var (
	dryRun     = flag.Bool("dry-run", true, "Dry run mode, don't actually cancel orders")
	expireDays = flag.Int("expire-days", 0, "Days to keep pending orders (0 = use config value)")
)

func main() {
	flag.Parse()

	log.Println("Starting stale order cleanup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	days := *expireDays
	if days <= 0 {
		days = cfg.Orders.PendingExpireDays
	}
	if days <= 0 {
		days = 7
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	before := time.Now().AddDate(0, 0, -days)

	if *dryRun {
		var count int64
		err := db.Model(&model.Order{}).
			Where("status = ? AND created_at < ?", model.OrderStatusPending, before).
			Count(&count).Error
		if err != nil {
			log.Fatalf("Failed to count stale orders: %v", err)
		}
		log.Printf("Would cancel %d pending orders older than %d days", count, days)
		log.Println("DRY RUN MODE - no orders were cancelled")
		log.Println("Run with -dry-run=false to actually cancel them")
		return
	}

	affected, err := orderRepo.CancelStalePending(before)
	if err != nil {
		log.Fatalf("Failed to cancel stale orders: %v", err)
	}

	log.Printf("Cancelled %d pending orders older than %d days", affected, days)
	log.Println("Cleanup completed")
}
