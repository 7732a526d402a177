package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/email"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/mercadopago"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

var (
	ErrOrderNotFound        = errors.New("Pedido não encontrado")
	ErrInvalidPlan          = errors.New("Plano ou valor inválido")
	ErrInvalidTransition    = errors.New("Transição de status inválida")
	ErrPaymentNotConfigured = errors.New("Sistema de pagamento não configurado. Entre em contato com o suporte.")
)

// OrderService 订单服务。下单先落库再调支付网关，
// 网关失败订单保持 pending，可由后台或重试补单
type OrderService struct {
	orderRepo      *repository.OrderRepository
	settingService *SettingService
	adminService   *AdminService
	mpClient       *mercadopago.Client
	emailService   *email.Service
	cfg            *config.Config
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	settingService *SettingService,
	adminService *AdminService,
	mpClient *mercadopago.Client,
	emailService *email.Service,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		settingService: settingService,
		adminService:   adminService,
		mpClient:       mpClient,
		emailService:   emailService,
		cfg:            cfg,
	}
}

// Create 创建订单并生成 Mercado Pago 支付链接。
// 未配置支付令牌时不请求网关，订单留在 pending
func (s *OrderService) Create(ctx context.Context, user *model.User, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	plan := s.cfg.PlanByName(req.Plan)
	if plan == nil {
		return nil, ErrInvalidPlan
	}

	price := plan.MonthlyPrice
	cycle := "Mensal"
	if req.IsAnnual {
		price = plan.AnnualPrice
		cycle = "Anual"
	}
	if req.Price != price {
		return nil, ErrInvalidPlan
	}

	order := &model.Order{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Plan:      plan.Name,
		Price:     price,
		IsAnnual:  req.IsAnnual,
		Status:    model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	token := s.settingService.MercadoPagoToken()
	if token == "" {
		return nil, ErrPaymentNotConfigured
	}

	orderRef := fmt.Sprintf("%d", order.ID)
	backBase := fmt.Sprintf("%s/dashboard?payment=%%s&order=%s", s.cfg.Server.BaseURL, orderRef)
	pref := &mercadopago.PreferenceRequest{
		Items: []mercadopago.PreferenceItem{
			{
				Title:      fmt.Sprintf("VyntrixHost - %s (%s)", plan.Name, cycle),
				UnitPrice:  price,
				Quantity:   1,
				CurrencyID: "BRL",
			},
		},
		Payer: mercadopago.PreferencePayer{
			Name:  user.Name,
			Email: user.Email,
		},
		ExternalReference: orderRef,
		NotificationURL:   s.cfg.Server.BaseURL + "/api/v1/payments/webhook",
		BackURLs: mercadopago.BackURLs{
			Success: fmt.Sprintf(backBase, "success"),
			Pending: fmt.Sprintf(backBase, "pending"),
			Failure: fmt.Sprintf(backBase, "failure"),
		},
		AutoReturn: "approved",
	}

	preference, err := s.mpClient.CreatePreference(ctx, token, pref)
	if err != nil {
		return nil, err
	}

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		CheckoutURL: preference.InitPoint,
	}, nil
}

// ListByUser 用户自己的订单列表
func (s *OrderService) ListByUser(userID int64) ([]model.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetByID 查询单个订单，客户只能看自己的
func (s *OrderService) GetByID(actor *model.User, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 后台更新订单状态。状态只能前进，
// completed 且带接入信息时补发邮件
func (s *OrderService) UpdateStatus(actor *model.User, orderID int64, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !order.CanTransitionTo(req.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, req.Status, req.AccessInfo); err != nil {
		return nil, err
	}

	if req.Status == model.OrderStatusCompleted && req.AccessInfo != nil && *req.AccessInfo != "" {
		if err := s.emailService.SendAccessInfo(order.UserEmail, order.UserName, order.Plan, *req.AccessInfo); err != nil {
			log.Printf("发送接入信息邮件失败 order=%d: %v", orderID, err)
		}
	}

	if err := s.adminService.Refresh(actor); err != nil {
		log.Printf("刷新后台缓存失败: %v", err)
	}

	return s.orderRepo.GetByID(orderID)
}
