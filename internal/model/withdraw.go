package model

import (
	"time"
)

const (
	WithdrawStatusPending = "pending"
	WithdrawStatusPaid    = "paid"
)

type WithdrawRequest struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	UserName    string     `gorm:"size:100;not null" json:"user_name"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"` // pending, paid
	RequestDate time.Time  `gorm:"not null" json:"request_date"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}
