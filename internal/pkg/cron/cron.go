package cron

import (
	"log"
	"time"

	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

type Service struct {
	orderRepo         *repository.OrderRepository
	pendingExpireDays int
	stopChan          chan struct{}
}

func NewService(orderRepo *repository.OrderRepository, pendingExpireDays int) *Service {
	return &Service{
		orderRepo:         orderRepo,
		pendingExpireDays: pendingExpireDays,
		stopChan:          make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runStaleOrderCancel()
	log.Println("Cron service started (stale order cancel)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runStaleOrderCancel 每日取消超期未支付订单
func (s *Service) runStaleOrderCancel() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.CancelStaleOrders()
			timer.Reset(24 * time.Hour)
		}
	}
}

// CancelStaleOrders 取消创建超过保留期仍未支付的订单
func (s *Service) CancelStaleOrders() {
	days := s.pendingExpireDays
	if days <= 0 {
		days = 7
	}

	before := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	count, err := s.orderRepo.CancelStalePending(before)
	if err != nil {
		log.Printf("Failed to cancel stale pending orders: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Cancelled %d stale pending orders", count)
	}
}
