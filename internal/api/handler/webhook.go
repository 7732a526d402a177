package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/pkg/queue"
)

type WebhookHandler struct {
	paymentQueue *queue.Queue
}

func NewWebhookHandler(paymentQueue *queue.Queue) *WebhookHandler {
	return &WebhookHandler{paymentQueue: paymentQueue}
}

type webhookBody struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleMercadoPago 接收 Mercado Pago 支付通知。
// 只入队不处理，并且永远返回 200，避免网关反复重发
// POST /api/v1/payments/webhook
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	var body webhookBody
	_ = c.ShouldBindJSON(&body)

	paymentID := body.Data.ID
	if paymentID == "" {
		paymentID = c.Query("data.id")
	}
	if paymentID == "" {
		paymentID = c.Query("id")
	}

	notificationType := body.Type
	if notificationType == "" {
		notificationType = c.Query("type")
	}
	if notificationType == "" {
		notificationType = c.Query("topic")
	}

	if paymentID == "" || notificationType != "payment" {
		c.Status(http.StatusOK)
		return
	}

	msg := &queue.PaymentNotification{
		PaymentID:  paymentID,
		Type:       notificationType,
		Action:     body.Action,
		ReceivedAt: time.Now().Unix(),
	}
	if err := h.paymentQueue.Push(c.Request.Context(), msg); err != nil {
		// 入队失败也返回 200，网关会按自己的策略重试
		log.Printf("支付通知入队失败 payment=%s: %v", paymentID, err)
	}

	c.Status(http.StatusOK)
}
