package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/email"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/mercadopago"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/pubsub"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/queue"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

// Processor 支付通知处理器。webhook 只入队，
// 这里回查网关确认金额和状态后才改订单
type Processor struct {
	orderRepo        *repository.OrderRepository
	userRepo         *repository.UserRepository
	affiliateService *service.AffiliateService
	settingService   *service.SettingService
	mpClient         *mercadopago.Client
	publisher        *pubsub.Publisher
	emailService     *email.Service
	cfg              *config.Config
}

// NewProcessor 创建支付通知处理器
func NewProcessor(
	orderRepo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	affiliateService *service.AffiliateService,
	settingService *service.SettingService,
	mpClient *mercadopago.Client,
	publisher *pubsub.Publisher,
	emailService *email.Service,
	cfg *config.Config,
) *Processor {
	return &Processor{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		affiliateService: affiliateService,
		settingService:   settingService,
		mpClient:         mpClient,
		publisher:        publisher,
		emailService:     emailService,
		cfg:              cfg,
	}
}

// Process 处理一条支付通知。
// 同一支付编号只入账一次，重复通知直接跳过
func (p *Processor) Process(ctx context.Context, msg *queue.PaymentNotification) error {
	// 重复通知：支付编号已经挂在某个订单上
	if _, err := p.orderRepo.GetByPaymentID(msg.PaymentID); err == nil {
		log.Printf("Payment %s already processed, skipping", msg.PaymentID)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check payment id: %w", err)
	}

	token := p.settingService.MercadoPagoToken()
	if token == "" {
		return fmt.Errorf("payment token not configured, cannot verify payment %s", msg.PaymentID)
	}

	payment, err := p.mpClient.GetPayment(ctx, token, msg.PaymentID)
	if err != nil {
		return fmt.Errorf("get payment %s: %w", msg.PaymentID, err)
	}

	if payment.Status != mercadopago.PaymentStatusApproved {
		log.Printf("Payment %s status is %s, nothing to do", msg.PaymentID, payment.Status)
		return nil
	}

	orderID, err := strconv.ParseInt(payment.ExternalReference, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid external reference %q on payment %s", payment.ExternalReference, msg.PaymentID)
	}

	order, err := p.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("get order %d: %w", orderID, err)
	}

	if !order.CanTransitionTo(model.OrderStatusPaid) {
		log.Printf("Order %d status is %s, payment %s ignored", order.ID, order.Status, msg.PaymentID)
		return nil
	}

	// 金额对不上不能入账，留给人工核对
	if math.Abs(payment.TransactionAmount-order.Price) > 0.01 {
		return fmt.Errorf("payment %s amount %.2f does not match order %d price %.2f",
			msg.PaymentID, payment.TransactionAmount, order.ID, order.Price)
	}

	if err := p.orderRepo.MarkPaid(order.ID, msg.PaymentID); err != nil {
		return fmt.Errorf("mark order %d paid: %w", order.ID, err)
	}
	log.Printf("Order %d marked paid via payment %s (R$ %.2f)", order.ID, msg.PaymentID, payment.TransactionAmount)

	p.settleCommission(order)

	// 推送给 API 进程，转发到后台 WebSocket
	event := &pubsub.OrderEvent{
		Type:      pubsub.EventOrderPaid,
		OrderID:   order.ID,
		UserID:    order.UserID,
		UserName:  order.UserName,
		Plan:      order.Plan,
		Price:     order.Price,
		Status:    model.OrderStatusPaid,
		PaymentID: msg.PaymentID,
	}
	if err := p.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Failed to publish order event for order %d: %v", order.ID, err)
	}

	if err := p.emailService.SendPaymentConfirmation(order.UserEmail, order.UserName, order.Plan, order.Price); err != nil {
		log.Printf("Failed to send payment confirmation for order %d: %v", order.ID, err)
	}

	return nil
}

// settleCommission 买家是被推荐注册的就给推荐人入账佣金。
// 入账失败只记日志，订单本身已经支付完成
func (p *Processor) settleCommission(order *model.Order) {
	buyer, err := p.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Failed to load buyer %d for commission: %v", order.UserID, err)
		return
	}
	if buyer.ReferredByCode == nil || *buyer.ReferredByCode == "" {
		return
	}

	err = p.affiliateService.RecordConversion(*buyer.ReferredByCode, buyer, order.Plan, order.Price, order.ID)
	if err != nil {
		if errors.Is(err, service.ErrAffiliateNotFound) {
			log.Printf("Referral code %s on user %d no longer exists", *buyer.ReferredByCode, buyer.ID)
			return
		}
		log.Printf("Failed to record conversion for order %d: %v", order.ID, err)
	}
}
