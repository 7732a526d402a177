package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyntrixhost/portal_go_server/internal/pkg/queue"
)

func setupWebhookHandler(t *testing.T) (*WebhookHandler, *queue.Queue) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	paymentQueue := queue.NewQueue(client, "payment_notifications_test")
	return NewWebhookHandler(paymentQueue), paymentQueue
}

func TestWebhookHandler_EnqueuesPaymentNotification(t *testing.T) {
	handler, paymentQueue := setupWebhookHandler(t)

	router := gin.New()
	router.POST("/webhook", handler.HandleMercadoPago)

	body := map[string]interface{}{
		"type":   "payment",
		"action": "payment.updated",
		"data":   map[string]string{"id": "12345678"},
	}
	w := performRequest(router, "POST", "/webhook", body)
	assert.Equal(t, 200, w.Code)

	msg, err := paymentQueue.Pop(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "12345678", msg.PaymentID)
	assert.Equal(t, "payment.updated", msg.Action)
}

func TestWebhookHandler_QueryParams(t *testing.T) {
	handler, paymentQueue := setupWebhookHandler(t)

	router := gin.New()
	router.POST("/webhook", handler.HandleMercadoPago)

	req := httptest.NewRequest("POST", "/webhook?type=payment&data.id=987", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	msg, err := paymentQueue.Pop(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "987", msg.PaymentID)
}

func TestWebhookHandler_IgnoresNonPayment(t *testing.T) {
	handler, paymentQueue := setupWebhookHandler(t)

	router := gin.New()
	router.POST("/webhook", handler.HandleMercadoPago)

	body := map[string]interface{}{
		"type": "merchant_order",
		"data": map[string]string{"id": "555"},
	}
	w := performRequest(router, "POST", "/webhook", body)

	// Still acked so the gateway stops retrying.
	assert.Equal(t, 200, w.Code)

	length, err := paymentQueue.Length(context.Background())
	require.NoError(t, err)
	assert.Zero(t, length)
}
