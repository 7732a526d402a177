package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/api/middleware"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/mercadopago"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	authService  *service.AuthService
}

func NewOrderHandler(orderService *service.OrderService, authService *service.AuthService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authService:  authService,
	}
}

// Create 下单并生成支付链接
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), user, &req)
	if err != nil {
		var apiErr *mercadopago.APIError
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrPaymentNotConfigured):
			response.PaymentError(c, err.Error())
		case errors.As(err, &apiErr):
			response.PaymentError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "Pedido criado, redirecionando para o pagamento", resp)
}

// List 当前用户的订单列表
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	orders, err := h.orderService.ListByUser(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, orders)
}

// Get 订单详情
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "ID de pedido inválido")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.AuthError(c, "")
		return
	}

	order, err := h.orderService.GetByID(user, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, order)
}
