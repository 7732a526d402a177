package model

import (
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`
	// 买家姓名和邮箱冗余存储，后台列表不用联表
	UserName  string  `gorm:"size:100;not null" json:"user_name"`
	UserEmail string  `gorm:"size:100;not null" json:"user_email"`
	Plan      string  `gorm:"size:50;not null" json:"plan"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAnnual  bool    `gorm:"not null;default:false" json:"is_annual"`
	Status    string  `gorm:"size:20;default:pending;index" json:"status"` // pending, paid, completed, cancelled
	// PaymentID 支付网关的支付编号，webhook 处理时写入
	PaymentID *string `gorm:"size:100;uniqueIndex" json:"payment_id,omitempty"`
	// AccessInfo 开通后交付给客户的访问凭据
	AccessInfo *string   `gorm:"type:text" json:"access_info,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// CanTransitionTo 订单状态只能向前推进（pending → paid → completed），或转为 cancelled
func (o *Order) CanTransitionTo(status string) bool {
	if status == OrderStatusCancelled {
		return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
	}

	rank := map[string]int{
		OrderStatusPending:   0,
		OrderStatusPaid:      1,
		OrderStatusCompleted: 2,
	}

	from, okFrom := rank[o.Status]
	to, okTo := rank[status]
	if !okFrom || !okTo {
		return false
	}
	return to > from
}
