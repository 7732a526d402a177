package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelOrderEvents = "order_events"
)

// 事件类型常量
const (
	EventOrderPaid      = "order_paid"
	EventOrderCompleted = "order_completed"
	EventOrderCancelled = "order_cancelled"
)

// OrderEvent 订单状态变更事件，worker 发布，API 进程转发给后台 WebSocket
type OrderEvent struct {
	Type      string  `json:"type"`
	OrderID   int64   `json:"order_id"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name"`
	Plan      string  `json:"plan"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	PaymentID string  `json:"payment_id,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishOrderEvent 发布订单事件
func (p *Publisher) PublishOrderEvent(ctx context.Context, event *OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return p.client.Publish(ctx, ChannelOrderEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅订单事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*OrderEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelOrderEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
