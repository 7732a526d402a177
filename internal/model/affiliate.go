package model

import (
	"time"
)

type Affiliate struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	UserName    string     `gorm:"size:100;not null" json:"user_name"`
	Code        string     `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Clicks      int        `gorm:"default:0" json:"clicks"`
	Conversions int        `gorm:"default:0" json:"conversions"`
	Balance     float64    `gorm:"type:decimal(10,2);default:0" json:"balance"`
	Referrals   []Referral `gorm:"foreignKey:AffiliateID" json:"referrals"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

type Referral struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	AffiliateID  int64  `gorm:"not null;index" json:"affiliate_id"`
	ReferredName string `gorm:"size:100;not null" json:"referred_name"`
	Plan         string `gorm:"size:50;not null" json:"plan"`
	// Commission 转化时按比例一次性计算，之后不再重算
	Commission float64   `gorm:"type:decimal(10,2);not null" json:"commission"`
	OrderID    int64     `gorm:"not null;uniqueIndex" json:"order_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
